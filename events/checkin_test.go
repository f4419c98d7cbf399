package events

import (
	"strings"
	"testing"
)

func TestCheckinPayloadRoundTrip(t *testing.T) {
	payload := checkinPayload("evt123", "u42", "87654321")

	eventID, userID, code, ok := verifyCheckinPayload(payload)
	if !ok {
		t.Fatal("freshly signed payload failed verification")
	}
	if eventID != "evt123" || userID != "u42" || code != "87654321" {
		t.Errorf("got (%s, %s, %s), want (evt123, u42, 87654321)", eventID, userID, code)
	}
}

func TestCheckinPayloadTamperRejected(t *testing.T) {
	payload := checkinPayload("evt123", "u42", "87654321")

	tampered := strings.Replace(payload, "u42", "u43", 1)
	if _, _, _, ok := verifyCheckinPayload(tampered); ok {
		t.Error("payload with altered user id should fail verification")
	}

	parts := strings.Split(payload, "|")
	parts[4] = "bm90IGEgcmVhbCBzaWduYXR1cmU="
	if _, _, _, ok := verifyCheckinPayload(strings.Join(parts, "|")); ok {
		t.Error("payload with forged signature should fail verification")
	}
}

func TestCheckinPayloadMalformed(t *testing.T) {
	for _, payload := range []string{
		"",
		"evt123",
		"evt123|u42|code",
		"evt123|u42|code|123|sig|extra",
	} {
		if _, _, _, ok := verifyCheckinPayload(payload); ok {
			t.Errorf("malformed payload %q should fail verification", payload)
		}
	}
}
