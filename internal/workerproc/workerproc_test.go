package workerproc

import (
	"errors"
	"testing"

	"relevance-backend/internal/queue"
)

func TestParseMessage(t *testing.T) {
	body, err := queue.EncodeMessage(queue.Message{
		EvaluationID: "eval-1",
		RequestID:    "req-1",
		Version:      1,
	})
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}

	msg, meta, err := ParseMessage(string(body))
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if msg.EvaluationID != "eval-1" || msg.RequestID != "req-1" {
		t.Fatalf("msg = %+v", msg)
	}
	if meta.BodyLen != len(body) || meta.BodySHA == "" {
		t.Fatalf("meta = %+v", meta)
	}
}

func TestParseMessageEmptyBody(t *testing.T) {
	_, meta, err := ParseMessage("   ")
	var emptyErr ErrEmptyBody
	if !errors.As(err, &emptyErr) {
		t.Fatalf("err = %v, want ErrEmptyBody", err)
	}
	if meta.BodyLen != 3 {
		t.Fatalf("bodyLen = %d", meta.BodyLen)
	}
}

func TestParseMessageDecodeFailure(t *testing.T) {
	_, _, err := ParseMessage("{not json")
	var decodeErr ErrDecode
	if !errors.As(err, &decodeErr) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestParseMessageMissingEvaluationID(t *testing.T) {
	_, _, err := ParseMessage(`{"requestId":"req-1","version":1}`)
	var missingErr ErrMissingEvaluationID
	if !errors.As(err, &missingErr) {
		t.Fatalf("err = %v, want ErrMissingEvaluationID", err)
	}
	if missingErr.RequestID != "req-1" {
		t.Fatalf("requestID = %q", missingErr.RequestID)
	}
}

func TestHandleMessageRequiresApp(t *testing.T) {
	if err := HandleMessage(nil, nil, "{}"); err == nil {
		t.Fatal("expected error when app is nil")
	}
}
