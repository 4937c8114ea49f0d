// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package api

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/nosubvod/internal/models"
)

func TestUpdateHistory(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/history", `{"vodId":"42","timecode":-3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	entry := decodeBody[models.HistoryEntry](t, rec)
	if entry.VODID != "42" || entry.Timecode != 0 || entry.Duration != 0 {
		t.Errorf("entry = %+v, want clamped timecode and zero duration", entry)
	}
	if entry.UpdatedAt != uint64(testEpoch.UnixMilli()) {
		t.Errorf("UpdatedAt = %d, want %d", entry.UpdatedAt, testEpoch.UnixMilli())
	}

	rec = env.do(t, http.MethodGet, "/api/history/42", "")
	if got := decodeBody[models.HistoryEntry](t, rec); got.VODID != "42" {
		t.Errorf("history by id = %+v", got)
	}

	rec = env.do(t, http.MethodGet, "/api/history/nope", "")
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Errorf("unknown id body = %q, want null", rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/history", "")
	if all := decodeBody[map[string]models.HistoryEntry](t, rec); len(all) != 1 {
		t.Errorf("history = %+v, want one entry", all)
	}
}

func TestUpdateHistory_Invalid(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{
		`{"timecode":10}`,
		`{"vodId":"42"}`,
		`{"vodId":"42","timecode":"ten"}`,
		`not json`,
	} {
		t.Run(body, func(t *testing.T) {
			assertError(t, env.do(t, http.MethodPost, "/api/history", body), http.StatusBadRequest, "Invalid parameters")
		})
	}
}

func TestHistoryList_SortedAndEnriched(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	env.catalog.videos["2"] = models.Video{ID: "2", Title: "second"}

	for _, id := range []string{"1", "2", "3"} {
		if _, err := env.store.UpsertHistory(ctx, id, 1, 10); err != nil {
			t.Fatal(err)
		}
		env.clock.Advance(time.Second)
	}

	rec := env.do(t, http.MethodGet, "/api/history/list", "")
	items := decodeBody[[]models.HistoryListItem](t, rec)
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	for i, want := range []string{"3", "2", "1"} {
		if items[i].VODID != want {
			t.Errorf("items[%d] = %s, want %s", i, items[i].VODID, want)
		}
	}
	if items[1].VOD == nil || items[1].VOD.Title != "second" {
		t.Errorf("items[1].VOD = %+v, want enriched", items[1].VOD)
	}
	if items[0].VOD != nil {
		t.Errorf("items[0].VOD = %+v, want nil", items[0].VOD)
	}
	if !strings.Contains(rec.Body.String(), `"vod":null`) {
		t.Errorf("missing videos must serialize as null: %s", rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/history/list?limit=0", "")
	if got := decodeBody[[]models.HistoryListItem](t, rec); len(got) != 1 || got[0].VODID != "3" {
		t.Errorf("limit=0 should clamp to 1, got %+v", got)
	}
}

func TestHistoryList_BatchesLookups(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	for i := range 35 {
		if _, err := env.store.UpsertHistory(ctx, strconv.Itoa(i), 0, 0); err != nil {
			t.Fatal(err)
		}
	}

	env.do(t, http.MethodGet, "/api/history/list", "")
	if len(env.catalog.batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(env.catalog.batches))
	}
	if len(env.catalog.batches[0]) != 30 || len(env.catalog.batches[1]) != 5 {
		t.Errorf("batch sizes = %d, %d; want 30, 5", len(env.catalog.batches[0]), len(env.catalog.batches[1]))
	}
}

func TestWatchlist(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/watchlist", "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("empty watchlist = %q, want []", rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/watchlist", `{"vodId":"42","title":"t","addedAt":1}`)
	list := decodeBody[[]models.WatchlistEntry](t, rec)
	if len(list) != 1 || list[0].AddedAt != uint64(testEpoch.UnixMilli()) {
		t.Errorf("list = %+v, want server-assigned addedAt", list)
	}

	assertError(t, env.do(t, http.MethodPost, "/api/watchlist", `{"vodId":"  "}`), http.StatusBadRequest, "Invalid watchlist payload")

	rec = env.do(t, http.MethodDelete, "/api/watchlist/42", "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("after delete = %q, want []", rec.Body.String())
	}
}

func TestSubs(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/subs", `{"login":" ZeRator ","displayName":"ZeratoR","profileImageURL":"https://img"}`)
	subs := decodeBody[[]models.SubEntry](t, rec)
	if len(subs) != 1 || subs[0].Login != "zerator" {
		t.Errorf("subs = %+v, want normalized login", subs)
	}

	for _, body := range []string{
		`{"login":"a","displayName":"A"}`,
		`{"login":"","displayName":"A","profileImageURL":"x"}`,
		`{"displayName":"A","profileImageURL":"x"}`,
	} {
		assertError(t, env.do(t, http.MethodPost, "/api/subs", body), http.StatusBadRequest, "Invalid sub payload")
	}

	rec = env.do(t, http.MethodDelete, "/api/subs/ZERATOR", "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("after delete = %q, want []", rec.Body.String())
	}
}

func TestSettings(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/settings", "")
	if got := decodeBody[models.Settings](t, rec); got.OneSync {
		t.Errorf("default settings = %+v", got)
	}

	rec = env.do(t, http.MethodPost, "/api/settings", `{"oneSync":true}`)
	if got := decodeBody[models.Settings](t, rec); !got.OneSync {
		t.Errorf("updated settings = %+v", got)
	}

	rec = env.do(t, http.MethodPost, "/api/settings", `{}`)
	if got := decodeBody[models.Settings](t, rec); !got.OneSync {
		t.Errorf("empty patch changed settings: %+v", got)
	}
}
