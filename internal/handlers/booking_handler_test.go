package handlers_test

import (
	"ShareIt/internal/model"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_Lifecycle(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.user("Owner")
	booker := ts.user("Booker")
	stranger := ts.user("Stranger")
	item := ts.item(owner, "Drill")

	id := ts.booking(booker, item, 10, 20)

	t.Run("approve by booker forbidden", func(t *testing.T) {
		rr := ts.do(http.MethodPatch, "/bookings/"+itoa(id)+"?approved=true", booker, nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("approved param required", func(t *testing.T) {
		rr := ts.do(http.MethodPatch, "/bookings/"+itoa(id), owner, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("approve then approve again", func(t *testing.T) {
		rr := ts.do(http.MethodPatch, "/bookings/"+itoa(id)+"?approved=true", owner, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		b := decode[model.BookingView](t, rr)
		assert.Equal(t, model.StatusApproved, b.Status)
		assert.Equal(t, "Drill", b.Item.Name)

		rr = ts.do(http.MethodPatch, "/bookings/"+itoa(id)+"?approved=false", owner, nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("overlap and adjacency", func(t *testing.T) {
		rr := ts.do(http.MethodPost, "/bookings", stranger, map[string]any{"itemId": item, "start": ts.at(15), "end": ts.at(25)})
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		ts.booking(stranger, item, 20, 30)
	})

	t.Run("owner cannot book", func(t *testing.T) {
		rr := ts.do(http.MethodPost, "/bookings", owner, map[string]any{"itemId": item, "start": ts.at(40), "end": ts.at(41)})
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("local timestamp format accepted", func(t *testing.T) {
		rr := ts.do(http.MethodPost, "/bookings", stranger, `{"itemId":`+itoa(item)+`,"start":"2026-04-01T10:00:00","end":"2026-04-01T12:00:00"}`)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	})

	t.Run("reversed dates", func(t *testing.T) {
		rr := ts.do(http.MethodPost, "/bookings", stranger, map[string]any{"itemId": item, "start": ts.at(50), "end": ts.at(49)})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("get by id", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/bookings/"+itoa(id), booker, nil).Code)
		assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/bookings/"+itoa(id), owner, nil).Code)
		assert.Equal(t, http.StatusForbidden, ts.do(http.MethodGet, "/bookings/"+itoa(id), stranger, nil).Code)
		assert.Equal(t, http.StatusNotFound, ts.do(http.MethodGet, "/bookings/9999", owner, nil).Code)
	})
}

func TestBooking_Lists(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.user("Owner")
	booker := ts.user("Booker")
	item := ts.item(owner, "Drill")
	ts.booking(booker, item, 1, 2)
	ts.booking(booker, item, 3, 4)

	rr := ts.do(http.MethodGet, "/bookings?state=waiting", booker, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]model.BookingView](t, rr), 2)

	rr = ts.do(http.MethodGet, "/bookings?state=ALL&from=1&size=1", booker, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]model.BookingView](t, rr), 1)

	rr = ts.do(http.MethodGet, "/bookings?state=UNSUPPORTED", booker, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unknown state")

	rr = ts.do(http.MethodGet, "/bookings/owner?state=PAST", owner, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = ts.do(http.MethodGet, "/bookings/owner", booker, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
