package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/forcecharge/core/model"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Token: "secret", PageSize: 2})
}

func TestClient_GetSettings(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/settings", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(model.Settings{
			NumberOfCompareRanges:    4,
			CompareRangePercentage:   decimal.RequireFromString("0.9"),
			MaximumElectricityPrice:  decimal.NewFromInt(50),
			MinChargeDurationMinutes: 30,
			MaxChargeDurationMinutes: 120,
			SearchWindowHours:        12,
		})
	}))

	settings, err := client.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, settings.NumberOfCompareRanges)
	assert.Equal(t, 2*time.Hour, settings.MaximumForceChargingDuration())
}

func TestClient_GetSettings_NotConfigured(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := client.GetSettings(context.Background())
	require.ErrorIs(t, err, ErrNoSettings)
}

func TestClient_LatestForceChargeRange_None(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	latest, err := client.LatestForceChargeRange(context.Background())
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestClient_QueryPrices_Paginates(t *testing.T) {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	all := make([]model.PricePoint, 5)
	for i := range all {
		all[i] = model.PricePoint{
			StartsAt: start.Add(time.Duration(i) * time.Hour),
			Total:    decimal.NewFromInt(int64(10 + i)),
		}
	}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/prices", r.URL.Path)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))
		lo := (page - 1) * perPage
		hi := lo + perPage
		if hi > len(all) {
			hi = len(all)
		}
		_ = json.NewEncoder(w).Encode(pricePage{
			Items:      all[lo:hi],
			Page:       page,
			TotalPages: (len(all) + perPage - 1) / perPage,
		})
	}))

	points, err := client.QueryPrices(context.Background(), start, start.Add(6*time.Hour))
	require.NoError(t, err)
	require.Len(t, points, len(all))
	for i, p := range points {
		assert.True(t, p.StartsAt.Equal(all[i].StartsAt), "point %d", i)
	}
}

func TestClient_QueryPrices_RejectsUnsortedSeries(t *testing.T) {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(pricePage{
			Items: []model.PricePoint{
				{StartsAt: start.Add(time.Hour), Total: decimal.NewFromInt(10)},
				{StartsAt: start, Total: decimal.NewFromInt(20)},
			},
			Page:       1,
			TotalPages: 1,
		})
	}))

	_, err := client.QueryPrices(context.Background(), start, start.Add(6*time.Hour))
	require.Error(t, err)
}

func TestClient_CreateForceChargeRange(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/ranges", r.URL.Path)
		var incoming model.ForceChargeRange
		require.NoError(t, json.NewDecoder(r.Body).Decode(&incoming))
		incoming.ID = "rng_1"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(incoming)
	}))

	stored, err := client.CreateForceChargeRange(context.Background(), model.ForceChargeRange{
		StartsAt:  time.Date(2026, 1, 10, 2, 0, 0, 0, time.UTC),
		EndsAt:    time.Date(2026, 1, 10, 3, 0, 0, 0, time.UTC),
		TargetSoC: 1.0,
		State:     model.RangeStatePlanned,
		Source:    model.RangeSourceAutomatic,
	})
	require.NoError(t, err)
	assert.Equal(t, "rng_1", stored.ID)
	assert.Equal(t, model.RangeStatePlanned, stored.State)
}

func TestClient_CreateMessageAndPush(t *testing.T) {
	var pushed string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/messages":
			var msg model.Message
			require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
			require.NotEmpty(t, msg.ID)
			_ = json.NewEncoder(w).Encode(msg)
		default:
			_, _ = fmt.Sscanf(r.URL.Path, "/api/messages/%s", &pushed)
			w.WriteHeader(http.StatusNoContent)
		}
	}))

	msg, err := client.CreateMessage(context.Background(), "title", "body")
	require.NoError(t, err)
	require.NoError(t, client.SendPush(context.Background(), msg.ID))
	assert.Equal(t, msg.ID+"/send", pushed)
}
