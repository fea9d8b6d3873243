package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsnotes/internal/api"
	"github.com/newsnotes/internal/config"
	"github.com/newsnotes/internal/mocks"
	"github.com/newsnotes/internal/models"
	"github.com/newsnotes/internal/repository"
	"github.com/newsnotes/internal/service"
	"github.com/newsnotes/internal/session"
)

const password = "s3cret-pass"

type testSite struct {
	handler  http.Handler
	services *service.Services
	articles *mocks.MockArticleRepository
	comments *mocks.MockCommentRepository
	notes    *mocks.MockNoteRepository
	db       api.HealthChecker
}

type healthFunc func(ctx context.Context) error

func (f healthFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

func newTestSite(t *testing.T, app string, tweak ...func(*service.Services)) *testSite {
	t.Helper()
	return newTestSiteWithDB(t, app, nil, tweak...)
}

func newTestSiteWithDB(t *testing.T, app string, db api.HealthChecker, tweak ...func(*service.Services)) *testSite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	site := &testSite{
		db:       db,
		articles: mocks.NewMockArticleRepository(),
		comments: mocks.NewMockCommentRepository(),
		notes:    mocks.NewMockNoteRepository(),
	}
	repos := &repository.Repositories{
		User:    mocks.NewMockUserRepository(),
		Article: site.articles,
		Comment: site.comments,
		Note:    site.notes,
	}
	cfg := &config.Config{
		App:     app,
		Content: config.DefaultContent(),
		Import:  config.ImportConfig{BatchSize: 100},
	}
	site.services = service.NewServices(repos, cfg, zerolog.Nop())
	for _, f := range tweak {
		f(site.services)
	}

	sessions := session.NewManager(config.SessionConfig{
		CookieName:  "sessionid",
		Lifetime:    time.Hour,
		IdleTimeout: time.Hour,
	}, session.NewStore(nil))

	site.handler = api.NewRouter(site.services, sessions, site.db, cfg, zerolog.Nop())
	return site
}

// do sends a request. A non-nil form is sent url-encoded.
func (s *testSite) do(t *testing.T, method, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// login registers username and returns its session cookie and user id
func (s *testSite) login(t *testing.T, username string) (*http.Cookie, string) {
	t.Helper()
	user, err := s.services.Users.SignUp(context.Background(), &models.SignupForm{
		Username: username, Password1: password, Password2: password,
	})
	require.NoError(t, err)

	rec := s.do(t, http.MethodPost, "/auth/login/", url.Values{"username": {username}, "password": {password}}, nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	for _, c := range rec.Result().Cookies() {
		if c.Name == "sessionid" {
			return c, user.ID
		}
	}
	t.Fatal("no session cookie after login")
	return nil, ""
}

func (s *testSite) addArticle(t *testing.T, publish time.Time) *models.Article {
	t.Helper()
	a := &models.Article{ID: uuid.New().String(), Title: "Заголовок", Text: "Текст", PublishDate: publish}
	require.NoError(t, s.articles.Create(context.Background(), a))
	return a
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var page map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page), rec.Body.String())
	return page
}

func formErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string][]string {
	t.Helper()
	var page struct {
		Form struct {
			Errors map[string][]string `json:"errors"`
		} `json:"form"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page), rec.Body.String())
	return page.Form.Errors
}

func assertLoginRedirect(t *testing.T, rec *httptest.ResponseRecorder, next string) {
	t.Helper()
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login/?next="+next, rec.Header().Get("Location"))
}

// Operational endpoints

func TestHealthEndpoint(t *testing.T) {
	site := newTestSite(t, config.AppNews)

	rec := site.do(t, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "news", response["service"])
}

func TestHealthEndpoint_DatabaseDown(t *testing.T) {
	down := healthFunc(func(context.Context) error { return errors.New("connection refused") })
	site := newTestSiteWithDB(t, config.AppNotes, down)

	rec := site.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unhealthy")
}

func TestStatsEndpoint(t *testing.T) {
	export := mocks.NewMockExportService()
	export.Counts["articles"] = 500
	export.Counts["notes"] = 7
	site := newTestSite(t, config.AppNotes, func(s *service.Services) { s.Export = export })

	rec := site.do(t, http.MethodGet, "/stats", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Database map[string]int `json:"database"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, map[string]int{"users": 0, "articles": 500, "comments": 0, "notes": 7}, response.Database)

	export.CountError = errors.New("connection refused")
	rec = site.do(t, http.MethodGet, "/stats", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	site := newTestSite(t, config.AppNews)
	site.do(t, http.MethodGet, "/", nil, nil)

	rec := site.do(t, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "newsnotes_http_requests_total")
}

func TestLoginRedirect_EscapesQueryButNotSlashes(t *testing.T) {
	site := newTestSite(t, config.AppNews)
	article := site.addArticle(t, time.Now())

	rec := site.do(t, http.MethodPost, "/news/"+article.ID+"/?from=home&x=1", url.Values{"text": {"Текст"}}, nil)
	assertLoginRedirect(t, rec, "/news/"+article.ID+"/%3Ffrom%3Dhome%26x%3D1")
}

// Auth

func TestLogin(t *testing.T) {
	site := newTestSite(t, config.AppNews)
	_, err := site.services.Users.SignUp(context.Background(), &models.SignupForm{
		Username: "автор", Password1: password, Password2: password,
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		target   string
		form     url.Values
		wantCode int
		wantLoc  string
	}{
		{"next honored", "/auth/login/?next=/news/1/", url.Values{"username": {"автор"}, "password": {password}}, http.StatusFound, "/news/1/"},
		{"next in form", "/auth/login/", url.Values{"username": {"автор"}, "password": {password}, "next": {"/news/2/"}}, http.StatusFound, "/news/2/"},
		{"external next ignored", "/auth/login/?next=//evil.example/", url.Values{"username": {"автор"}, "password": {password}}, http.StatusFound, "/"},
		{"absolute next ignored", "/auth/login/?next=https://evil.example/", url.Values{"username": {"автор"}, "password": {password}}, http.StatusFound, "/"},
		{"wrong password", "/auth/login/", url.Values{"username": {"автор"}, "password": {"nope"}}, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := site.do(t, http.MethodPost, tt.target, tt.form, nil)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantLoc, rec.Header().Get("Location"))
		})
	}

	rec := site.do(t, http.MethodPost, "/auth/login/", url.Values{"username": {"автор"}, "password": {"nope"}}, nil)
	assert.Equal(t, []string{api.MsgInvalidLogin}, formErrors(t, rec)["__all__"])

	rec = site.do(t, http.MethodPost, "/auth/login/", url.Values{}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	errs := formErrors(t, rec)
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "password")
}

func TestSignup(t *testing.T) {
	site := newTestSite(t, config.AppNotes)

	rec := site.do(t, http.MethodGet, "/auth/signup/", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = site.do(t, http.MethodPost, "/auth/signup/", url.Values{
		"username": {"новый"}, "password1": {password}, "password2": {"other"},
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, formErrors(t, rec), "password2")

	rec = site.do(t, http.MethodPost, "/auth/signup/", url.Values{
		"username": {"новый"}, "password1": {password}, "password2": {password},
	}, nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login/", rec.Header().Get("Location"))

	rec = site.do(t, http.MethodPost, "/auth/signup/", url.Values{
		"username": {"новый"}, "password1": {password}, "password2": {password},
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{service.MsgUsernameTaken}, formErrors(t, rec)["username"])
}

func TestLogout(t *testing.T) {
	site := newTestSite(t, config.AppNotes)
	cookie, _ := site.login(t, "автор")

	rec := site.do(t, http.MethodGet, "/notes/", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = site.do(t, http.MethodPost, "/auth/logout/", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = site.do(t, http.MethodGet, "/notes/", nil, cookie)
	assertLoginRedirect(t, rec, "/notes/")
}

// News

func TestNews_Index(t *testing.T) {
	site := newTestSite(t, config.AppNews)
	today := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	for i := 0; i <= 10; i++ {
		site.addArticle(t, today.AddDate(0, 0, -i))
	}

	rec := site.do(t, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		ObjectList []models.Article `json:"object_list"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.ObjectList, config.DefaultNewsPageSize)
	assert.True(t, page.ObjectList[0].PublishDate.Equal(today))
	for i := 1; i < len(page.ObjectList); i++ {
		assert.False(t, page.ObjectList[i].PublishDate.After(page.ObjectList[i-1].PublishDate))
	}
}

func TestNews_Detail(t *testing.T) {
	site := newTestSite(t, config.AppNews)
	article := site.addArticle(t, time.Now())
	cookie, _ := site.login(t, "читатель")

	rec := site.do(t, http.MethodGet, "/news/"+article.ID+"/", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode(t, rec)
	assert.Contains(t, page, "news")
	assert.Contains(t, page, "comments")
	assert.NotContains(t, page, "form")

	rec = site.do(t, http.MethodGet, "/news/"+article.ID+"/", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode(t, rec), "form")

	rec = site.do(t, http.MethodGet, "/news/"+uuid.New().String()+"/", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNews_AddComment(t *testing.T) {
	site := newTestSite(t, config.AppNews)
	article := site.addArticle(t, time.Now())
	cookie, userID := site.login(t, "читатель")
	target := "/news/" + article.ID + "/"

	rec := site.do(t, http.MethodPost, target, url.Values{"text": {"Текст комментария"}}, nil)
	assertLoginRedirect(t, rec, target)
	assert.Empty(t, site.comments.Comments)

	for _, word := range config.DefaultBadWords {
		rec = site.do(t, http.MethodPost, target, url.Values{"text": {"Какой-то текст, " + word + ", еще текст"}}, cookie)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{config.DefaultCommentWarning}, formErrors(t, rec)["text"])
	}
	assert.Empty(t, site.comments.Comments)

	rec = site.do(t, http.MethodPost, target, url.Values{"text": {"Текст комментария"}}, cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, target+"#comments", rec.Header().Get("Location"))
	require.Len(t, site.comments.Comments, 1)
	assert.Equal(t, userID, site.comments.Comments[0].AuthorID)
	assert.Equal(t, article.ID, site.comments.Comments[0].ArticleID)
}

func TestNews_CommentOwnership(t *testing.T) {
	site := newTestSite(t, config.AppNews)
	article := site.addArticle(t, time.Now())
	authorCookie, authorID := site.login(t, "автор")
	readerCookie, _ := site.login(t, "читатель")

	comment := &models.Comment{
		ID: uuid.New().String(), ArticleID: article.ID, AuthorID: authorID,
		Text: "Текст комментария", CreatedAt: time.Now(),
	}
	require.NoError(t, site.comments.Create(context.Background(), comment))

	editURL := "/edit_comment/" + comment.ID + "/"
	deleteURL := "/delete_comment/" + comment.ID + "/"
	anchor := "/news/" + article.ID + "/#comments"
	newText := url.Values{"text": {"Обновлённый комментарий"}}

	storedText := func() string {
		c, err := site.comments.GetByID(context.Background(), comment.ID)
		require.NoError(t, err)
		require.NotNil(t, c)
		return c.Text
	}

	t.Run("anonymous is sent to login", func(t *testing.T) {
		assertLoginRedirect(t, site.do(t, http.MethodGet, editURL, nil, nil), editURL)
		assertLoginRedirect(t, site.do(t, http.MethodPost, editURL, newText, nil), editURL)
		assertLoginRedirect(t, site.do(t, http.MethodGet, deleteURL, nil, nil), deleteURL)
		assertLoginRedirect(t, site.do(t, http.MethodPost, deleteURL, nil, nil), deleteURL)
		assert.Equal(t, "Текст комментария", storedText())
	})

	t.Run("other user gets not found", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, site.do(t, http.MethodGet, editURL, nil, readerCookie).Code)
		assert.Equal(t, http.StatusNotFound, site.do(t, http.MethodPost, editURL, newText, readerCookie).Code)
		assert.Equal(t, http.StatusNotFound, site.do(t, http.MethodGet, deleteURL, nil, readerCookie).Code)
		assert.Equal(t, http.StatusNotFound, site.do(t, http.MethodPost, deleteURL, nil, readerCookie).Code)
		assert.Equal(t, "Текст комментария", storedText())
		assert.Len(t, site.comments.Comments, 1)
	})

	t.Run("author edits", func(t *testing.T) {
		rec := site.do(t, http.MethodGet, editURL, nil, authorCookie)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, decode(t, rec), "comment")

		rec = site.do(t, http.MethodPost, editURL, url.Values{"text": {"ну ты и редиска"}}, authorCookie)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{config.DefaultCommentWarning}, formErrors(t, rec)["text"])
		assert.Equal(t, "Текст комментария", storedText())

		rec = site.do(t, http.MethodPost, editURL, newText, authorCookie)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, anchor, rec.Header().Get("Location"))
		assert.Equal(t, "Обновлённый комментарий", storedText())
	})

	t.Run("author deletes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, site.do(t, http.MethodGet, deleteURL, nil, authorCookie).Code)

		rec := site.do(t, http.MethodDelete, deleteURL, nil, authorCookie)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, anchor, rec.Header().Get("Location"))
		assert.Empty(t, site.comments.Comments)
	})
}

func TestNews_AnonymousWithUndecodableBodyIsSentToLogin(t *testing.T) {
	site := newTestSite(t, config.AppNews)
	article := site.addArticle(t, time.Now())
	_, authorID := site.login(t, "автор")

	comment := &models.Comment{
		ID: uuid.New().String(), ArticleID: article.ID, AuthorID: authorID,
		Text: "Текст комментария", CreatedAt: time.Now(),
	}
	require.NoError(t, site.comments.Create(context.Background(), comment))

	for _, target := range []string{
		"/news/" + article.ID + "/",
		"/edit_comment/" + comment.ID + "/",
	} {
		req := httptest.NewRequest(http.MethodPost, target, strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		site.handler.ServeHTTP(rec, req)

		assertLoginRedirect(t, rec, target)
	}
	require.Len(t, site.comments.Comments, 1)
	assert.Equal(t, "Текст комментария", site.comments.Comments[0].Text)
}

func TestNews_ExportArticles(t *testing.T) {
	site := newTestSite(t, config.AppNews)
	site.addArticle(t, time.Now())
	site.addArticle(t, time.Now().Add(-time.Hour))

	rec := site.do(t, http.MethodGet, "/export/articles", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/x-ndjson", rec.Header().Get("Content-Type"))
	assert.Len(t, strings.Split(strings.TrimSpace(rec.Body.String()), "\n"), 2)

	rec = site.do(t, http.MethodGet, "/export/articles?format=csv", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Notes

func TestNotes_AnonymousIsSentToLogin(t *testing.T) {
	site := newTestSite(t, config.AppNotes)
	owner, _ := site.login(t, "автор")
	rec := site.do(t, http.MethodPost, "/add/", url.Values{"title": {"Заголовок"}, "text": {"Текст"}}, owner)
	require.Equal(t, http.StatusFound, rec.Code)

	for _, target := range []string{"/notes/", "/add/", "/done/", "/note/zagolovok/", "/edit/zagolovok/", "/delete/zagolovok/"} {
		t.Run(target, func(t *testing.T) {
			assertLoginRedirect(t, site.do(t, http.MethodGet, target, nil, nil), target)
		})
	}

	assertLoginRedirect(t, site.do(t, http.MethodPost, "/add/", url.Values{"title": {"Другой"}, "text": {"Текст"}}, nil), "/add/")
	assertLoginRedirect(t, site.do(t, http.MethodPost, "/delete/zagolovok/", nil, nil), "/delete/zagolovok/")
	assert.Len(t, site.notes.Notes, 1)

	assert.Equal(t, http.StatusOK, site.do(t, http.MethodGet, "/", nil, nil).Code)
}

func TestNotes_Add(t *testing.T) {
	site := newTestSite(t, config.AppNotes)
	cookie, userID := site.login(t, "автор")

	assert.Equal(t, http.StatusOK, site.do(t, http.MethodGet, "/add/", nil, cookie).Code)

	rec := site.do(t, http.MethodPost, "/add/", url.Values{"title": {"Новый заголовок"}, "text": {"Новый текст"}}, cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/done/", rec.Header().Get("Location"))
	require.Len(t, site.notes.Notes, 1)
	assert.Equal(t, "novyij-zagolovok", site.notes.Notes[0].Slug)
	assert.Equal(t, userID, site.notes.Notes[0].AuthorID)

	rec = site.do(t, http.MethodPost, "/add/", url.Values{"title": {"Другой"}, "text": {"Текст"}, "slug": {"novyij-zagolovok"}}, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"novyij-zagolovok" + config.DefaultSlugWarning}, formErrors(t, rec)["slug"])
	assert.Len(t, site.notes.Notes, 1)

	assert.Equal(t, http.StatusOK, site.do(t, http.MethodGet, "/done/", nil, cookie).Code)
}

func TestNotes_Ownership(t *testing.T) {
	site := newTestSite(t, config.AppNotes)
	authorCookie, _ := site.login(t, "автор")
	readerCookie, _ := site.login(t, "читатель")

	rec := site.do(t, http.MethodPost, "/add/", url.Values{"title": {"Заголовок"}, "text": {"Текст"}, "slug": {"note-slug"}}, authorCookie)
	require.Equal(t, http.StatusFound, rec.Code)

	listLen := func(cookie *http.Cookie) int {
		rec := site.do(t, http.MethodGet, "/notes/", nil, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		var page struct {
			ObjectList []models.Note `json:"object_list"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		return len(page.ObjectList)
	}
	assert.Equal(t, 1, listLen(authorCookie))
	assert.Equal(t, 0, listLen(readerCookie))

	edit := url.Values{"title": {"Новый заголовок"}, "text": {"Новый текст"}, "slug": {"new-slug"}}

	t.Run("other user gets not found", func(t *testing.T) {
		for _, target := range []string{"/note/note-slug/", "/edit/note-slug/", "/delete/note-slug/"} {
			assert.Equal(t, http.StatusNotFound, site.do(t, http.MethodGet, target, nil, readerCookie).Code, target)
		}
		assert.Equal(t, http.StatusNotFound, site.do(t, http.MethodPost, "/edit/note-slug/", edit, readerCookie).Code)
		assert.Equal(t, http.StatusNotFound, site.do(t, http.MethodPost, "/delete/note-slug/", nil, readerCookie).Code)

		require.Len(t, site.notes.Notes, 1)
		assert.Equal(t, "Заголовок", site.notes.Notes[0].Title)
		assert.Equal(t, "note-slug", site.notes.Notes[0].Slug)
	})

	t.Run("author edits", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, site.do(t, http.MethodGet, "/note/note-slug/", nil, authorCookie).Code)
		assert.Equal(t, http.StatusOK, site.do(t, http.MethodGet, "/edit/note-slug/", nil, authorCookie).Code)

		rec := site.do(t, http.MethodPost, "/edit/note-slug/", edit, authorCookie)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/done/", rec.Header().Get("Location"))

		require.Len(t, site.notes.Notes, 1)
		assert.Equal(t, "Новый заголовок", site.notes.Notes[0].Title)
		assert.Equal(t, "Новый текст", site.notes.Notes[0].Text)
		assert.Equal(t, "new-slug", site.notes.Notes[0].Slug)
	})

	t.Run("author deletes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, site.do(t, http.MethodGet, "/delete/new-slug/", nil, authorCookie).Code)

		rec := site.do(t, http.MethodPost, "/delete/new-slug/", nil, authorCookie)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/done/", rec.Header().Get("Location"))
		assert.Empty(t, site.notes.Notes)
	})
}
