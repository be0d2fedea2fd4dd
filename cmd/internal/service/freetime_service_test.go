package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestCreateFreetime(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice@example.com")

	tests := []struct {
		name      string
		start     string
		end       string
		wantStart string
		wantEnd   string
	}{
		{"rfc3339 with offset", "2021-08-27T16:30:00+02:00", "2021-08-27T18:00:00+02:00", "2021-08-27T14:30:00Z", "2021-08-27T16:00:00Z"},
		{"form datetime", "2021-08-27T14:30", "2021-08-27 16:00", "2021-08-27T14:30:00Z", "2021-08-27T16:00:00Z"},
		{"end before start", "2021-08-27T16:00:00Z", "2021-08-27T14:00:00Z", "2021-08-27T16:00:00Z", "2021-08-27T14:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, apierr := env.freetimes.CreateFreetime(context.Background(), alice, &FreetimeRequest{Start: tt.start, End: tt.end})
			if apierr != nil {
				t.Fatalf("CreateFreetime() failed: %v", apierr)
			}
			if resp.Start != tt.wantStart || resp.End != tt.wantEnd {
				t.Errorf("got %s - %s, want %s - %s", resp.Start, resp.End, tt.wantStart, tt.wantEnd)
			}
			if resp.UserID != alice {
				t.Errorf("UserID = %d, want %d", resp.UserID, alice)
			}
		})
	}
}

func TestCreateFreetime_PrettyTimes(t *testing.T) {
	env := newTestEnv(t)
	env.freetimes.Location = time.FixedZone("EST", -5*60*60)
	alice := env.register(t, "alice@example.com")

	resp, apierr := env.freetimes.CreateFreetime(context.Background(), alice, &FreetimeRequest{
		Start: "2021-08-27T19:30:00Z",
		End:   "2021-08-27 16:00",
	})
	if apierr != nil {
		t.Fatalf("CreateFreetime() failed: %v", apierr)
	}
	if resp.PrettyStart != "Aug 27, 2021 @ 14:30" {
		t.Errorf("PrettyStart = %q", resp.PrettyStart)
	}
	if resp.End != "2021-08-27T21:00:00Z" || resp.PrettyEnd != "Aug 27, 2021 @ 16:00" {
		t.Errorf("End = %q / %q", resp.End, resp.PrettyEnd)
	}
}

func TestCreateFreetime_BadInput(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice@example.com")

	tests := []struct {
		name string
		req  FreetimeRequest
	}{
		{"missing start", FreetimeRequest{End: "2021-08-27T14:00:00Z"}},
		{"gibberish", FreetimeRequest{Start: "qwerty zxcv", End: "2021-08-27T14:00:00Z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, apierr := env.freetimes.CreateFreetime(context.Background(), alice, &tt.req)
			if apierr == nil || apierr.Code() != http.StatusBadRequest {
				t.Errorf("CreateFreetime() = %v, want 400", apierr)
			}
		})
	}
}

func TestGetFreetimes_Ordered(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice@example.com")
	bob := env.register(t, "bob@example.com")

	late := env.freetime(t, alice, "2024-03-05T09:00:00Z")
	early := env.freetime(t, alice, "2024-03-01T09:00:00Z")
	env.freetime(t, bob, "2024-03-02T09:00:00Z")

	freetimes, apierr := env.freetimes.GetFreetimes(context.Background(), alice)
	if apierr != nil {
		t.Fatalf("GetFreetimes() failed: %v", apierr)
	}
	if diff := cmp.Diff([]int{early, late}, freetimeResponseIDs(freetimes)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestFreetimeUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice@example.com")
	bob := env.register(t, "bob@example.com")
	id := env.freetime(t, alice, "2024-03-01T09:00:00Z")
	taskID := env.task(t, alice, &TaskRequest{FreetimeIDs: []int{id}})

	req := &FreetimeRequest{Start: "2024-03-01T10:00:00Z", End: "2024-03-01T12:00:00Z"}
	if _, apierr := env.freetimes.UpdateFreetime(ctx, bob, id, req); apierr == nil || apierr.Code() != http.StatusForbidden {
		t.Errorf("UpdateFreetime() by other user = %v, want 403", apierr)
	}

	resp, apierr := env.freetimes.UpdateFreetime(ctx, alice, id, req)
	if apierr != nil {
		t.Fatalf("UpdateFreetime() failed: %v", apierr)
	}
	if resp.Start != "2024-03-01T10:00:00Z" || resp.End != "2024-03-01T12:00:00Z" {
		t.Errorf("updated freetime = %+v", resp)
	}

	if apierr := env.freetimes.DeleteFreetime(ctx, bob, id); apierr == nil || apierr.Code() != http.StatusForbidden {
		t.Errorf("DeleteFreetime() by other user = %v, want 403", apierr)
	}
	if apierr := env.freetimes.DeleteFreetime(ctx, alice, id); apierr != nil {
		t.Fatalf("DeleteFreetime() failed: %v", apierr)
	}
	if _, apierr := env.freetimes.GetFreetime(ctx, alice, id); apierr == nil || apierr.Code() != http.StatusNotFound {
		t.Errorf("GetFreetime() after delete = %v, want 404", apierr)
	}
	if ids := env.linkedIDs(t, taskID); len(ids) != 0 {
		t.Errorf("task still linked to deleted freetime: %v", ids)
	}
}
