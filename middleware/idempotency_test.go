package middleware

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"guildhall/models"
)

// The stored response must come back with its status and body intact after a
// round trip through bson, or replayed duplicates would not see the original
// outcome.
func TestCachedResponseSurvivesStorage(t *testing.T) {
	rec := models.IdempotencyRecord{
		Key:         "k1",
		Method:      "POST",
		Path:        "/api/loans/l1/approve",
		UserID:      "u1",
		RequestHash: "abc123",
		Response:    &models.CachedResponse{Status: 409, Body: `{"error":"Cannot move loan from active to active"}`},
	}

	data, err := bson.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}

	var decoded models.IdempotencyRecord
	if err := bson.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	if decoded.Response == nil {
		t.Fatal("stored response decoded to nil")
	}
	if decoded.Response.Status != 409 {
		t.Errorf("replayed status = %d, want 409", decoded.Response.Status)
	}
	if decoded.Response.Body != rec.Response.Body {
		t.Errorf("replayed body = %q, want %q", decoded.Response.Body, rec.Response.Body)
	}
}

func TestCachedResponseAbsentWhileInFlight(t *testing.T) {
	data, err := bson.Marshal(models.IdempotencyRecord{Key: "k2", RequestHash: "abc"})
	if err != nil {
		t.Fatal(err)
	}
	var decoded models.IdempotencyRecord
	if err := bson.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Response != nil {
		t.Errorf("in-flight record should have no response, got %+v", decoded.Response)
	}
}

func TestCaptureResponseWriter(t *testing.T) {
	rr := httptest.NewRecorder()
	crw := &captureResponseWriter{w: rr, statusCode: 200}

	crw.WriteHeader(409)
	crw.WriteHeader(500) // only the first status sticks
	crw.Write([]byte(`{"error":"conflict"}`))

	if crw.statusCode != 409 {
		t.Errorf("captured status = %d, want 409", crw.statusCode)
	}
	if crw.buf.String() != `{"error":"conflict"}` {
		t.Errorf("captured body = %q", crw.buf.String())
	}
	if rr.Code != 409 {
		t.Errorf("underlying writer status = %d, want 409", rr.Code)
	}
	if rr.Body.String() != `{"error":"conflict"}` {
		t.Errorf("underlying writer body = %q", rr.Body.String())
	}
}

func TestComputeRequestHash(t *testing.T) {
	r1 := httptest.NewRequest("POST", "/api/loans/l1/approve", nil)
	r2 := httptest.NewRequest("POST", "/api/loans/l1/approve", nil)
	r3 := httptest.NewRequest("POST", "/api/loans/l2/approve", nil)

	if computeRequestHash(r1, []byte("{}"), "u1") != computeRequestHash(r2, []byte("{}"), "u1") {
		t.Error("identical requests should hash the same")
	}
	if computeRequestHash(r1, []byte("{}"), "u1") == computeRequestHash(r3, []byte("{}"), "u1") {
		t.Error("different paths should hash differently")
	}
	if computeRequestHash(r1, []byte("{}"), "u1") == computeRequestHash(r1, []byte("{}"), "u2") {
		t.Error("different users should hash differently")
	}
	if computeRequestHash(r1, []byte(`{"a":1}`), "u1") == computeRequestHash(r1, []byte(`{"a":2}`), "u1") {
		t.Error("different bodies should hash differently")
	}
}
