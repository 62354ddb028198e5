package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfectspot-api/models"
)

type eventData struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	Date           time.Time `json:"date"`
	Latitude       *float64  `json:"latitude"`
	Longitude      *float64  `json:"longitude"`
	ImageURL       *string   `json:"image_url"`
	IsPromoted     bool      `json:"is_promoted"`
	IsOwner        bool      `json:"is_owner"`
	IsAttending    bool      `json:"is_attending"`
	AttendeesCount int64     `json:"attendees_count"`
}

func TestCreateEventRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "tester", models.UserTypeIndividual)

	lat, lng := 52.2297, 21.0122
	imageURL := "https://example.com/party.jpg"
	date := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)

	rec, resp := env.request(t, http.MethodPost, "/events", env.tokenFor(t, user), map[string]interface{}{
		"title":       "Rooftop Party",
		"description": "Music and drinks",
		"location":    "Warsaw",
		"date":        date,
		"latitude":    lat,
		"longitude":   lng,
		"image_url":   imageURL,
		"is_promoted": true, // must be ignored
	})
	require.Equal(t, http.StatusCreated, rec.Code, resp.Message)

	var created eventData
	decodeData(t, resp, &created)
	assert.False(t, created.IsPromoted)
	assert.True(t, created.IsOwner)

	rec, resp = env.request(t, http.MethodGet, "/events/"+created.ID, env.tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched eventData
	decodeData(t, resp, &fetched)
	assert.Equal(t, "Rooftop Party", fetched.Title)
	assert.Equal(t, "Music and drinks", fetched.Description)
	assert.Equal(t, "Warsaw", fetched.Location)
	assert.True(t, fetched.Date.Equal(date))
	require.NotNil(t, fetched.Latitude)
	assert.Equal(t, lat, *fetched.Latitude)
	require.NotNil(t, fetched.Longitude)
	assert.Equal(t, lng, *fetched.Longitude)
	require.NotNil(t, fetched.ImageURL)
	assert.Equal(t, imageURL, *fetched.ImageURL)
	assert.False(t, fetched.IsPromoted)
}

func TestPartialUpdateChangesOnlyGivenFields(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "tester", models.UserTypeIndividual)
	event := env.createEvent(t, user, "Orig")

	rec, resp := env.request(t, http.MethodPatch, "/events/"+event.ID+"/edit", env.tokenFor(t, user),
		map[string]string{"title": "Updated"})
	require.Equal(t, http.StatusOK, rec.Code, resp.Message)

	_, resp = env.request(t, http.MethodGet, "/events/"+event.ID, "", nil)
	var fetched eventData
	decodeData(t, resp, &fetched)
	assert.Equal(t, "Updated", fetched.Title)
	assert.Equal(t, event.Description, fetched.Description)
	assert.Equal(t, event.Location, fetched.Location)
	assert.True(t, fetched.Date.Equal(event.Date))
}

func TestEventManagementPermissions(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", models.UserTypeIndividual)
	other := env.createUser(t, "other", models.UserTypeIndividual)
	event := env.createEvent(t, owner, "Guarded")

	rec, _ := env.request(t, http.MethodPatch, "/events/"+event.ID+"/edit", env.tokenFor(t, other),
		map[string]string{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = env.request(t, http.MethodDelete, "/events/"+event.ID, env.tokenFor(t, other), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = env.request(t, http.MethodPatch, "/events/"+event.ID+"/promote", env.tokenFor(t, other), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The event survived untouched
	_, resp := env.request(t, http.MethodGet, "/events/"+event.ID, "", nil)
	var fetched eventData
	decodeData(t, resp, &fetched)
	assert.Equal(t, "Guarded", fetched.Title)
	assert.False(t, fetched.IsPromoted)
}

func TestStaffCanEditAndDeleteAnyEvent(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", models.UserTypeIndividual)
	staff := env.createStaffUser(t, "moderator")
	event := env.createEvent(t, owner, "Moderated")

	rec, _ := env.request(t, http.MethodPatch, "/events/"+event.ID+"/edit", env.tokenFor(t, staff),
		map[string]string{"title": "Cleaned up"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.request(t, http.MethodDelete, "/events/"+event.ID, env.tokenFor(t, staff), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.request(t, http.MethodGet, "/events/"+event.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPromotionGatedByOrganizationType(t *testing.T) {
	env := newTestEnv(t)
	org := env.createUser(t, "concert_hall", models.UserTypeOrganization)
	individual := env.createUser(t, "regular", models.UserTypeIndividual)

	orgEvent := env.createEvent(t, org, "Gala")
	rec, resp := env.request(t, http.MethodPatch, "/events/"+orgEvent.ID+"/promote", env.tokenFor(t, org), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var promoted eventData
	decodeData(t, resp, &promoted)
	assert.True(t, promoted.IsPromoted)

	// Individuals cannot promote, not even their own events
	ownEvent := env.createEvent(t, individual, "House Party")
	rec, _ = env.request(t, http.MethodPatch, "/events/"+ownEvent.ID+"/promote", env.tokenFor(t, individual), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestToggleAttendanceIsIdempotentInPairs(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", models.UserTypeIndividual)
	guest := env.createUser(t, "guest", models.UserTypeIndividual)
	event := env.createEvent(t, owner, "Meetup")

	var rsvp struct {
		IsAttending    bool  `json:"is_attending"`
		AttendeesCount int64 `json:"attendees_count"`
	}

	rec, resp := env.request(t, http.MethodPost, "/events/"+event.ID+"/rsvp", env.tokenFor(t, guest), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, resp, &rsvp)
	assert.True(t, rsvp.IsAttending)
	assert.Equal(t, int64(1), rsvp.AttendeesCount)

	rec, resp = env.request(t, http.MethodPost, "/events/"+event.ID+"/rsvp", env.tokenFor(t, guest), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, resp, &rsvp)
	assert.False(t, rsvp.IsAttending)
	assert.Equal(t, int64(0), rsvp.AttendeesCount)
}

func TestOrganizationCanRSVP(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", models.UserTypeIndividual)
	org := env.createUser(t, "sponsor_org", models.UserTypeOrganization)
	event := env.createEvent(t, owner, "Open Doors")

	rec, resp := env.request(t, http.MethodPost, "/events/"+event.ID+"/rsvp", env.tokenFor(t, org), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rsvp struct {
		IsAttending bool `json:"is_attending"`
	}
	decodeData(t, resp, &rsvp)
	assert.True(t, rsvp.IsAttending)
}

func TestListEventsFiltersAndAnonymousFlags(t *testing.T) {
	env := newTestEnv(t)
	org := env.createUser(t, "promoter", models.UserTypeOrganization)

	env.createEvent(t, org, "Concert Night")
	plain := env.createEvent(t, org, "Quiet Afternoon")
	featured := env.createEvent(t, org, "Concert Special")
	require.NoError(t, env.db.Model(featured).Update("is_promoted", true).Error)

	// Title prefix filter
	_, resp := env.request(t, http.MethodGet, "/events?title=Concert", "", nil)
	var events []eventData
	decodeData(t, resp, &events)
	require.Len(t, events, 2)
	for _, e := range events {
		assert.NotEqual(t, plain.ID, e.ID)
		// Anonymous callers never own anything
		assert.False(t, e.IsOwner)
		assert.False(t, e.IsAttending)
	}

	// Promoted filter
	_, resp = env.request(t, http.MethodGet, "/events?promoted=true", "", nil)
	decodeData(t, resp, &events)
	require.Len(t, events, 1)
	assert.Equal(t, featured.ID, events[0].ID)

	// Authenticated caller sees ownership
	_, resp = env.request(t, http.MethodGet, "/events", env.tokenFor(t, org), nil)
	decodeData(t, resp, &events)
	require.Len(t, events, 3)
	for _, e := range events {
		assert.True(t, e.IsOwner)
	}
}

func TestCreateEventRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.request(t, http.MethodPost, "/events", "", map[string]interface{}{
		"title":       "Nope",
		"description": "Anonymous",
		"location":    "Nowhere",
		"date":        time.Now().Add(time.Hour),
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateEventValidation(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "tester", models.UserTypeIndividual)

	// Missing required fields
	rec, resp := env.request(t, http.MethodPost, "/events", env.tokenFor(t, user),
		map[string]string{"title": "Incomplete"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)

	// Out-of-range coordinates
	rec, _ = env.request(t, http.MethodPost, "/events", env.tokenFor(t, user), map[string]interface{}{
		"title":       "Bad Coords",
		"description": "desc",
		"location":    "loc",
		"date":        time.Now().Add(time.Hour),
		"latitude":    123.0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
