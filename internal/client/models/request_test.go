package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestState_Derivation(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		req  DispatchRequest
		want State
	}{
		{"empty draft", DispatchRequest{}, StateDraftIncomplete},
		{"files only", DispatchRequest{Files: []File{{}}}, StateDraftIncomplete},
		{"recipients only", DispatchRequest{Recipients: []Recipient{{}}}, StateDraftIncomplete},
		{"ready", DispatchRequest{Files: []File{{}}, Recipients: []Recipient{{}}}, StateDraftReady},
		{"submitted", DispatchRequest{DateSubmitted: &now}, StateSubmitted},
		{"submitted wins over ready", DispatchRequest{
			DateSubmitted: &now, Files: []File{{}}, Recipients: []Recipient{{}},
		}, StateSubmitted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.req.State())
		})
	}
}

func TestSenderInfo_Complete(t *testing.T) {
	full := SenderInfo{
		OrganizationName: "ACME",
		AddressCountry:   "DE",
		PostalCode:       "10115",
		AddressLocality:  "Berlin",
		StreetAddress:    "Invalidenstr.",
	}
	require.True(t, full.Complete())

	person := full
	person.OrganizationName = ""
	person.FullName = "Ada Lovelace"
	require.True(t, person.Complete())

	noName := full
	noName.OrganizationName = ""
	require.False(t, noName.Complete())

	noStreet := full
	noStreet.StreetAddress = ""
	require.False(t, noStreet.Complete())

	// Building number stays optional.
	require.Empty(t, full.BuildingNumber)
}

func TestDispatchRequest_SenderKeysInlined(t *testing.T) {
	req := DispatchRequest{
		Name: "Notice",
		SenderInfo: SenderInfo{
			OrganizationName: "ACME",
			AddressLocality:  "Berlin",
		},
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	require.Equal(t, "ACME", m["senderOrganizationName"])
	require.Equal(t, "Berlin", m["senderAddressLocality"])
	// Flat keys, no nested sender object.
	require.NotContains(t, m, "senderInfo")
	// Zero-valued computed fields stay off the wire for create payloads.
	require.NotContains(t, m, "identifier")
	require.NotContains(t, m, "dateCreated")
	require.NotContains(t, m, "recipients")
	require.NotContains(t, m, "files")
}

func TestDispatchRequest_UnmarshalWireFormat(t *testing.T) {
	payload := `{
		"identifier": "req-1",
		"name": "Notice",
		"senderFullName": "Ada Lovelace",
		"dateCreated": "2026-03-01T10:00:00Z",
		"dateSubmitted": "2026-03-02T09:30:00Z",
		"recipients": [{"identifier": "rec-1", "personIdentifier": "p-1"}],
		"files": [{"identifier": "file-1", "name": "doc.pdf", "contentSize": 123}]
	}`

	var req DispatchRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))
	require.Equal(t, "Ada Lovelace", req.FullName)
	require.True(t, req.Submitted())
	require.Len(t, req.Recipients, 1)
	require.True(t, req.Recipients[0].PersonLinked())
	require.Equal(t, int64(123), req.Files[0].ContentSize)
}
