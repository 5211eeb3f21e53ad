package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"feedback-link-service/internal/database"
	"feedback-link-service/internal/handlers"
	"feedback-link-service/internal/repository"
	"feedback-link-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var linkPattern = regexp.MustCompile(`^https://feedback\.tatamotors\.com/feedback/([0-9a-f]{10})$`)

type listedLink struct {
	ID         int64  `json:"id"`
	CustSrNo   string `json:"cust_sr_no"`
	CustMobNo  string `json:"cust_mob_no"`
	CustVehNo  string `json:"cust_veh_no"`
	FeedbackID string `json:"feedback_id"`
	Link       string `json:"link"`
	CreatedAt  string `json:"created_at"`
}

func newTestServer(t *testing.T, limit int) (http.Handler, *gorm.DB) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "feedback.db"))
	require.NoError(t, err)
	require.NoError(t, database.EnsureSchema(context.Background(), db))
	t.Cleanup(func() { _ = database.Close(db) })

	svc := service.NewFeedbackLinkService(repository.NewFeedbackLinkRepo(db), nil, "tatamotors.com", limit)
	return handlers.NewRouter(handlers.NewFeedbackLinkHandler(svc)), db
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/create-feedback-link", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func listLinks(t *testing.T, h http.Handler) []listedLink {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/links", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var links []listedLink
	require.NoError(t, json.NewDecoder(w.Body).Decode(&links))
	return links
}

func TestCreateLink_Success(t *testing.T) {
	h, _ := newTestServer(t, 100)

	w := post(t, h, `{"cust_sr_no":"SR1","cust_mob_no":"9999999999","cust_veh_no":"MH12AB1234"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"cust_sr_no":"SR1"`)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 6)
	assert.Equal(t, "9999999999", resp["cust_mob_no"])
	assert.Equal(t, "MH12AB1234", resp["cust_veh_no"])
	assert.Len(t, resp["feedback_id"], 10)
	assert.Equal(t, "https://feedback.tatamotors.com/feedback/"+resp["feedback_id"], resp["link"])
	assert.Regexp(t, linkPattern, resp["link"])
	assert.True(t, strings.HasSuffix(resp["created_at"], "Z"))

	links := listLinks(t, h)
	require.Len(t, links, 1)
	assert.Equal(t, int64(1), links[0].ID)
	assert.Equal(t, "SR1", links[0].CustSrNo)
	assert.Equal(t, resp["feedback_id"], links[0].FeedbackID)
	assert.Equal(t, resp["link"], links[0].Link)
	assert.Equal(t, resp["created_at"], links[0].CreatedAt)
}

func TestCreateLink_IgnoresContentType(t *testing.T) {
	h, _ := newTestServer(t, 100)

	req := httptest.NewRequest(http.MethodPost, "/create-feedback-link",
		strings.NewReader(`{"cust_sr_no":"SR1","cust_mob_no":"9999999999","cust_veh_no":"MH12AB1234"}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateLink_MissingFields(t *testing.T) {
	h, _ := newTestServer(t, 100)

	bodies := []string{
		`{"cust_sr_no":"SR1"}`,
		`{"cust_sr_no":"SR1","cust_mob_no":"9999999999"}`,
		`{"cust_sr_no":"","cust_mob_no":"9999999999","cust_veh_no":"MH12AB1234"}`,
		`{"cust_sr_no":"SR1","cust_mob_no":null,"cust_veh_no":"MH12AB1234"}`,
		`{"unrelated":"value"}`,
	}
	for _, body := range bodies {
		w := post(t, h, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"Missing required fields: cust_sr_no, cust_mob_no, cust_veh_no"}`, w.Body.String(), body)
	}

	assert.Empty(t, listLinks(t, h))
}

func TestCreateLink_InvalidPayload(t *testing.T) {
	h, _ := newTestServer(t, 100)

	bodies := []string{
		``,
		`not json`,
		`null`,
		`{}`,
		`[]`,
		`["SR1","9999999999","MH12AB1234"]`,
		`"SR1"`,
		`{"cust_sr_no":1,"cust_mob_no":"9999999999","cust_veh_no":"MH12AB1234"}`,
		`{"cust_sr_no":false,"cust_mob_no":"9999999999","cust_veh_no":"MH12AB1234"}`,
		`{"cust_sr_no":"SR1","cust_mob_no":"9999999999","cust_veh_no":"MH12AB1234"} garbage`,
		`{"cust_sr_no":"SR1","cust_mob_no":"9999999999","cust_veh_no":"MH12AB1234"}{}`,
		`{} {}`,
	}
	for _, body := range bodies {
		w := post(t, h, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"Invalid or missing JSON payload"}`, w.Body.String(), body)
	}

	assert.Empty(t, listLinks(t, h))
}

func TestCreateLink_DuplicateRequestsCreateDistinctRecords(t *testing.T) {
	h, _ := newTestServer(t, 100)
	body := `{"cust_sr_no":"SR1","cust_mob_no":"9999999999","cust_veh_no":"MH12AB1234"}`

	require.Equal(t, http.StatusOK, post(t, h, body).Code)
	require.Equal(t, http.StatusOK, post(t, h, body).Code)

	links := listLinks(t, h)
	require.Len(t, links, 2)
	assert.Equal(t, links[1].ID+1, links[0].ID)
	assert.NotEqual(t, links[0].FeedbackID, links[1].FeedbackID)
	assert.NotEqual(t, links[0].Link, links[1].Link)
}

func TestListLinks_EmptyIsArray(t *testing.T) {
	h, _ := newTestServer(t, 100)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/links", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListLinks_CappedAndNewestFirst(t *testing.T) {
	h, _ := newTestServer(t, 3)

	for i := 1; i <= 5; i++ {
		body := fmt.Sprintf(`{"cust_sr_no":"SR%d","cust_mob_no":"9999999999","cust_veh_no":"MH12AB1234"}`, i)
		require.Equal(t, http.StatusOK, post(t, h, body).Code)
	}

	links := listLinks(t, h)
	require.Len(t, links, 3)
	assert.Equal(t, "SR5", links[0].CustSrNo)
	assert.Equal(t, "SR4", links[1].CustSrNo)
	assert.Equal(t, "SR3", links[2].CustSrNo)
	for _, l := range links {
		m := linkPattern.FindStringSubmatch(l.Link)
		require.Len(t, m, 2)
		assert.Equal(t, l.FeedbackID, m[1])
	}
}

func TestStorageFailures(t *testing.T) {
	h, db := newTestServer(t, 100)
	require.NoError(t, database.Close(db))

	w := post(t, h, `{"cust_sr_no":"SR1","cust_mob_no":"9999999999","cust_veh_no":"MH12AB1234"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"failed to create feedback link"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/links", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"failed to list feedback links"}`, w.Body.String())

	// health stays up without storage
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t, 100)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestServer(t, 100)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/create-feedback-link", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
