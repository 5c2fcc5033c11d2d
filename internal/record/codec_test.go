package record

import (
	"errors"
	"reflect"
	"testing"

	"quiz-progress-service/internal/domain"
)

func TestDecodeEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "null", "{}"} {
		rec, err := Decode(raw)
		if err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
		if rec == nil || len(rec) != 0 {
			t.Fatalf("expected empty record for %q, got %+v", raw, rec)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	records := []domain.CompletionRecord{
		{},
		{"web3": {QuizID: "web3", Score: 4, TotalQuestions: 5}},
		{
			"merge":   {QuizID: "merge", Score: 0, TotalQuestions: 5},
			"wallets": {QuizID: "wallets", Score: 4, TotalQuestions: 4},
			"nfts":    {QuizID: "nfts", Score: 2, TotalQuestions: 4},
		},
	}
	for _, rec := range records {
		raw, err := Encode(rec)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		got, err := Decode(raw)
		if err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		if !reflect.DeepEqual(got, rec) {
			t.Fatalf("round trip mismatch: got %+v want %+v", got, rec)
		}
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	rec := domain.CompletionRecord{
		"b": {QuizID: "b", Score: 1, TotalQuestions: 2},
		"a": {QuizID: "a", Score: 3, TotalQuestions: 4},
	}
	raw, err := Encode(rec)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"a":{"score":3,"totalQuestions":4},"b":{"score":1,"totalQuestions":2}}`
	if raw != want {
		t.Fatalf("unexpected encoding %s", raw)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, raw := range []string{"not json", "[1,2]", `{"a":5}`, `{"a":null}`, `{"":{"score":1,"totalQuestions":1}}`} {
		rec, err := Decode(raw)
		var malformed *domain.MalformedRecordError
		if !errors.As(err, &malformed) || !errors.Is(err, domain.ErrMalformedRecord) {
			t.Fatalf("expected malformed record error for %q, got %v", raw, err)
		}
		if rec == nil || len(rec) != 0 {
			t.Fatalf("expected usable empty record for %q, got %+v", raw, rec)
		}
	}
}
