package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path"
	"sync"
	"testing"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/MovieFlow/internal/domain/catalog/entities"
	catalogerrors "github.com/Conte777/MovieFlow/internal/domain/catalog/errors"
	favdto "github.com/Conte777/MovieFlow/internal/domain/favorites/dto"
	faventities "github.com/Conte777/MovieFlow/internal/domain/favorites/entities"
	faverrors "github.com/Conte777/MovieFlow/internal/domain/favorites/errors"
	"github.com/Conte777/MovieFlow/internal/domain/movie/dto"
	moverrors "github.com/Conte777/MovieFlow/internal/domain/movie/errors"
)

// apiCall is one recorded Bot API request
type apiCall struct {
	method string
	form   map[string]string
}

// fakeAPI records Bot API calls and answers them successfully
type fakeAPI struct {
	mu        sync.Mutex
	calls     []apiCall
	failPhoto bool
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseMultipartForm(1 << 20)

	form := make(map[string]string)
	for k := range r.Form {
		form[k] = r.Form.Get(k)
	}
	method := path.Base(r.URL.Path)

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{method: method, form: form})
	failPhoto := f.failPhoto
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch method {
	case "sendPhoto":
		if failPhoto {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: wrong file identifier"}`))
			return
		}
		fallthrough
	case "sendMessage", "editMessageReplyMarkup":
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"}}}`))
	default:
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	}
}

func (f *fakeAPI) Calls(method string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []apiCall
	for _, c := range f.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeAPI) Texts() []string {
	var out []string
	for _, c := range f.Calls("sendMessage") {
		out = append(out, c.form["text"])
	}
	return out
}

// mockBrowser is a mock implementation of Browser
type mockBrowser struct {
	started          []int64
	awaiting         bool
	selectFunc       func(ctx context.Context, chatID int64, category entities.Category) (*dto.PresentationBatch, error)
	showMoreFunc     func(ctx context.Context, chatID, userID int64) (*dto.PresentationBatch, error)
	searchFunc       func(ctx context.Context, chatID int64, text string) (*dto.PresentationBatch, error)
	searchMoreFunc   func(ctx context.Context, chatID int64) (*dto.PresentationBatch, error)
	resolveFunc      func(ctx context.Context, chatID, movieID int64) (*entities.Movie, error)
	beginSearchCalls int
}

func (m *mockBrowser) StartBrowsing(ctx context.Context, chatID int64) {
	m.started = append(m.started, chatID)
}

func (m *mockBrowser) BeginSearch(ctx context.Context, chatID int64) {
	m.beginSearchCalls++
}

func (m *mockBrowser) AwaitingQuery(chatID int64) bool {
	return m.awaiting
}

func (m *mockBrowser) SelectCategory(ctx context.Context, chatID int64, category entities.Category) (*dto.PresentationBatch, error) {
	return m.selectFunc(ctx, chatID, category)
}

func (m *mockBrowser) ShowMore(ctx context.Context, chatID, userID int64) (*dto.PresentationBatch, error) {
	return m.showMoreFunc(ctx, chatID, userID)
}

func (m *mockBrowser) Search(ctx context.Context, chatID int64, text string) (*dto.PresentationBatch, error) {
	return m.searchFunc(ctx, chatID, text)
}

func (m *mockBrowser) SearchMore(ctx context.Context, chatID int64) (*dto.PresentationBatch, error) {
	return m.searchMoreFunc(ctx, chatID)
}

func (m *mockBrowser) ResolvePresented(ctx context.Context, chatID, movieID int64) (*entities.Movie, error) {
	return m.resolveFunc(ctx, chatID, movieID)
}

// mockFavorites is a mock implementation of Favorites
type mockFavorites struct {
	ensureErr   error
	added       []favdto.FavoriteItem
	addFunc     func(item favdto.FavoriteItem) (favdto.AddOutcome, error)
	removeFunc  func(movieID int64) (bool, error)
	list        []faventities.Favorite
	enabled     bool
	enabledErr  error
	toggleCalls int
}

func (m *mockFavorites) EnsureUser(ctx context.Context, userID int64, username string) error {
	return m.ensureErr
}

func (m *mockFavorites) Add(ctx context.Context, userID int64, username string, item favdto.FavoriteItem) (favdto.AddOutcome, error) {
	m.added = append(m.added, item)
	return m.addFunc(item)
}

func (m *mockFavorites) Remove(ctx context.Context, userID, movieID int64) (bool, error) {
	return m.removeFunc(movieID)
}

func (m *mockFavorites) List(ctx context.Context, userID int64) ([]faventities.Favorite, error) {
	return m.list, nil
}

func (m *mockFavorites) ToggleNotifications(ctx context.Context, userID int64) (bool, error) {
	m.toggleCalls++
	m.enabled = !m.enabled
	return m.enabled, nil
}

func (m *mockFavorites) NotificationsEnabled(ctx context.Context, userID int64) (bool, error) {
	return m.enabled, m.enabledErr
}

func newTestHandlers(t *testing.T, b *mockBrowser, f *mockFavorites) (*Handlers, *fakeAPI) {
	t.Helper()

	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	bot, err := tgbot.New("123:test", tgbot.WithServerURL(srv.URL), tgbot.WithSkipGetMe())
	require.NoError(t, err)

	return NewHandlers(b, f, bot, zerolog.Nop()), api
}

func textUpdate(text string) *models.Update {
	return &models.Update{Message: &models.Message{
		ID:   10,
		Text: text,
		From: &models.User{ID: 42, Username: "neo"},
		Chat: models.Chat{ID: 42},
	}}
}

func callbackUpdate(data string) *models.Update {
	return &models.Update{CallbackQuery: &models.CallbackQuery{
		ID:   "cb-1",
		From: models.User{ID: 42, Username: "neo"},
		Data: data,
		Message: models.MaybeInaccessibleMessage{
			Message: &models.Message{ID: 77, Chat: models.Chat{ID: 42}},
		},
	}}
}

var testBatch = &dto.PresentationBatch{
	Items: []entities.Movie{
		{ID: 1, Title: "Начало", ReleaseYear: "2010", PosterURL: "https://img/1.jpg"},
		{ID: 2, Title: "Матрица", ReleaseYear: "1999"},
	},
	HasMore:  true,
	Source:   dto.SourceCategory,
	Category: entities.CategoryHorror,
	Page:     1,
}

func TestHandleStart(t *testing.T) {
	b := &mockBrowser{}
	h, api := newTestHandlers(t, b, &mockFavorites{})

	h.HandleStart(context.Background(), nil, textUpdate("/start"))

	assert.Equal(t, []int64{42}, b.started)
	require.Equal(t, []string{MsgWelcome}, api.Texts())
	assert.Contains(t, api.Calls("sendMessage")[0].form["reply_markup"], dto.ButtonFavorites)
}

func TestHandleStart_PersistenceFailure(t *testing.T) {
	b := &mockBrowser{}
	h, api := newTestHandlers(t, b, &mockFavorites{ensureErr: faverrors.ErrPersistence})

	h.HandleStart(context.Background(), nil, textUpdate("/start"))

	assert.Empty(t, b.started)
	assert.Equal(t, []string{UserMessage(faverrors.ErrPersistence)}, api.Texts())
}

func TestHandleText_SelectCategoryRendersBatch(t *testing.T) {
	var got entities.Category
	b := &mockBrowser{selectFunc: func(ctx context.Context, chatID int64, category entities.Category) (*dto.PresentationBatch, error) {
		got = category
		return testBatch, nil
	}}
	h, api := newTestHandlers(t, b, &mockFavorites{})

	h.HandleText(context.Background(), nil, textUpdate("Ужасы 👻"))

	assert.Equal(t, entities.CategoryHorror, got)

	photos := api.Calls("sendPhoto")
	require.Len(t, photos, 1)
	assert.Equal(t, "https://img/1.jpg", photos[0].form["photo"])
	assert.Contains(t, photos[0].form["reply_markup"], `"fav:1"`)

	texts := api.Texts()
	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "<b>Матрица</b> (1999)")
	assert.Equal(t, MsgMoreCategory, texts[1])
	assert.Contains(t, api.Calls("sendMessage")[1].form["reply_markup"], `"more"`)
}

func TestHandleText_PosterFailureFallsBackToText(t *testing.T) {
	b := &mockBrowser{selectFunc: func(ctx context.Context, chatID int64, category entities.Category) (*dto.PresentationBatch, error) {
		return testBatch, nil
	}}
	h, api := newTestHandlers(t, b, &mockFavorites{})
	api.mu.Lock()
	api.failPhoto = true
	api.mu.Unlock()

	h.HandleText(context.Background(), nil, textUpdate("Ужасы 👻"))

	assert.Len(t, api.Texts(), 3)
}

func TestHandleText_PendingSearch(t *testing.T) {
	var query string
	b := &mockBrowser{
		awaiting: true,
		searchFunc: func(ctx context.Context, chatID int64, text string) (*dto.PresentationBatch, error) {
			query = text
			return &dto.PresentationBatch{Source: dto.SourceSearch, Query: text}, nil
		},
	}
	h, api := newTestHandlers(t, b, &mockFavorites{})

	h.HandleText(context.Background(), nil, textUpdate("<матрица>"))

	assert.Equal(t, "<матрица>", query)
	assert.Equal(t, []string{"По запросу «&lt;матрица&gt;» ничего не найдено."}, api.Texts())
}

func TestHandleText_UnknownText(t *testing.T) {
	h, api := newTestHandlers(t, &mockBrowser{}, &mockFavorites{})

	h.HandleText(context.Background(), nil, textUpdate("привет"))
	h.HandleText(context.Background(), nil, textUpdate("/help"))

	assert.Equal(t, []string{MsgChooseFromKeyboard, MsgUnknownCommand}, api.Texts())
}

func TestHandleText_Favorites(t *testing.T) {
	f := &mockFavorites{list: []faventities.Favorite{
		{MovieID: 603, MovieTitle: "Матрица", PosterURL: "https://img/603.jpg"},
		{MovieID: 27205, MovieTitle: "Начало"},
	}}
	h, api := newTestHandlers(t, &mockBrowser{}, f)

	h.HandleText(context.Background(), nil, textUpdate(dto.ButtonFavorites))

	photos := api.Calls("sendPhoto")
	require.Len(t, photos, 1)
	assert.Contains(t, photos[0].form["reply_markup"], `"del:603"`)

	texts := api.Texts()
	require.Len(t, texts, 2)
	assert.Equal(t, "<b>Начало</b>\n\nОписание отсутствует.", texts[0])
	assert.Equal(t, MsgFavoritesFooter, texts[1])
}

func TestHandleSearch(t *testing.T) {
	var query string
	b := &mockBrowser{searchFunc: func(ctx context.Context, chatID int64, text string) (*dto.PresentationBatch, error) {
		query = text
		return nil, moverrors.ErrEmptyQuery
	}}
	h, api := newTestHandlers(t, b, &mockFavorites{})

	h.HandleSearch(context.Background(), nil, textUpdate("/search"))
	assert.Equal(t, 1, b.beginSearchCalls)

	h.HandleSearch(context.Background(), nil, textUpdate("/search@movie_bot  дюна "))
	assert.Equal(t, "дюна", query)

	assert.Equal(t, []string{MsgSearchPrompt, UserMessage(moverrors.ErrEmptyQuery)}, api.Texts())
}

func TestHandleNotifications(t *testing.T) {
	h, api := newTestHandlers(t, &mockBrowser{}, &mockFavorites{enabled: true})

	h.HandleNotifications(context.Background(), nil, textUpdate("/notifications"))

	calls := api.Calls("sendMessage")
	require.Len(t, calls, 1)
	assert.Equal(t, notificationStatus(true), calls[0].form["text"])
	assert.Contains(t, calls[0].form["reply_markup"], ButtonNotifyOff)
}

func TestHandleNotifications_UnknownUser(t *testing.T) {
	h, api := newTestHandlers(t, &mockBrowser{}, &mockFavorites{enabledErr: faverrors.ErrUserNotFound})

	h.HandleNotifications(context.Background(), nil, textUpdate("/notifications"))

	assert.Equal(t, []string{UserMessage(faverrors.ErrUserNotFound)}, api.Texts())
}

func TestHandleCallback_ShowMore(t *testing.T) {
	var userID int64
	b := &mockBrowser{showMoreFunc: func(ctx context.Context, chatID, uid int64) (*dto.PresentationBatch, error) {
		userID = uid
		return testBatch, nil
	}}
	h, api := newTestHandlers(t, b, &mockFavorites{})

	h.HandleCallback(context.Background(), nil, callbackUpdate("more"))

	assert.Equal(t, int64(42), userID)
	require.Len(t, api.Calls("editMessageReplyMarkup"), 1)
	assert.Equal(t, "77", api.Calls("editMessageReplyMarkup")[0].form["message_id"])
	assert.Len(t, api.Calls("answerCallbackQuery"), 1)
	assert.Len(t, api.Calls("sendPhoto"), 1)
}

func TestHandleCallback_RateLimitedIsToastOnly(t *testing.T) {
	b := &mockBrowser{showMoreFunc: func(ctx context.Context, chatID, uid int64) (*dto.PresentationBatch, error) {
		return nil, moverrors.ErrRateLimited
	}}
	h, api := newTestHandlers(t, b, &mockFavorites{})

	h.HandleCallback(context.Background(), nil, callbackUpdate("more"))

	answers := api.Calls("answerCallbackQuery")
	require.Len(t, answers, 1)
	assert.Equal(t, UserMessage(moverrors.ErrRateLimited), answers[0].form["text"])
	assert.Empty(t, api.Texts())
	assert.Empty(t, api.Calls("editMessageReplyMarkup"))
}

func TestHandleCallback_SearchMoreExhausted(t *testing.T) {
	b := &mockBrowser{searchMoreFunc: func(ctx context.Context, chatID int64) (*dto.PresentationBatch, error) {
		return nil, moverrors.ErrNoMoreResults
	}}
	h, api := newTestHandlers(t, b, &mockFavorites{})

	h.HandleCallback(context.Background(), nil, callbackUpdate("search_more"))

	assert.Equal(t, []string{UserMessage(moverrors.ErrNoMoreResults)}, api.Texts())
}

func TestHandleCallback_AddFavorite(t *testing.T) {
	movie := &entities.Movie{ID: 603, Title: "Матрица", Overview: "Нео", PosterURL: "https://img/603.jpg"}

	tests := []struct {
		name    string
		outcome favdto.AddOutcome
		err     error
		want    string
	}{
		{"added", favdto.AddOutcomeAdded, nil, MsgFavoriteAdded},
		{"duplicate", favdto.AddOutcomeAlreadyExists, faverrors.ErrFavoriteAlreadyExists, UserMessage(faverrors.ErrFavoriteAlreadyExists)},
		{"limit", favdto.AddOutcomeLimitReached, faverrors.ErrFavoritesLimitReached, "❗ Вы достигли лимита в 10 избранных фильмов."},
		{"failed", favdto.AddOutcomeFailed, faverrors.ErrPersistence, UserMessage(faverrors.ErrPersistence)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &mockBrowser{resolveFunc: func(ctx context.Context, chatID, movieID int64) (*entities.Movie, error) {
				return movie, nil
			}}
			f := &mockFavorites{addFunc: func(item favdto.FavoriteItem) (favdto.AddOutcome, error) {
				return tt.outcome, tt.err
			}}
			h, api := newTestHandlers(t, b, f)

			h.HandleCallback(context.Background(), nil, callbackUpdate("fav:603"))

			require.Len(t, f.added, 1)
			assert.Equal(t, favdto.FavoriteItem{MovieID: 603, Title: "Матрица", Overview: "Нео", PosterURL: "https://img/603.jpg"}, f.added[0])
			assert.Equal(t, []string{tt.want}, api.Texts())
		})
	}
}

func TestHandleCallback_AddFavoriteUnresolved(t *testing.T) {
	b := &mockBrowser{resolveFunc: func(ctx context.Context, chatID, movieID int64) (*entities.Movie, error) {
		return nil, catalogerrors.ErrCatalogUnavailable
	}}
	f := &mockFavorites{}
	h, api := newTestHandlers(t, b, f)

	h.HandleCallback(context.Background(), nil, callbackUpdate("fav:603"))

	assert.Empty(t, f.added)
	answers := api.Calls("answerCallbackQuery")
	require.Len(t, answers, 1)
	assert.Equal(t, UserMessage(catalogerrors.ErrCatalogUnavailable), answers[0].form["text"])
}

func TestHandleCallback_RemoveFavorite(t *testing.T) {
	f := &mockFavorites{removeFunc: func(movieID int64) (bool, error) { return movieID == 603, nil }}
	h, api := newTestHandlers(t, &mockBrowser{}, f)

	h.HandleCallback(context.Background(), nil, callbackUpdate("del:603"))
	h.HandleCallback(context.Background(), nil, callbackUpdate("del:1"))

	assert.Len(t, api.Calls("deleteMessage"), 1)
	answers := api.Calls("answerCallbackQuery")
	require.Len(t, answers, 2)
	assert.Equal(t, MsgFavoriteRemoved, answers[0].form["text"])
	assert.Equal(t, MsgFavoriteNotRemoved, answers[1].form["text"])
}

func TestHandleCallback_ToggleNotifications(t *testing.T) {
	f := &mockFavorites{enabled: true}
	h, api := newTestHandlers(t, &mockBrowser{}, f)

	h.HandleCallback(context.Background(), nil, callbackUpdate("toggle_notifications"))

	assert.Equal(t, 1, f.toggleCalls)
	edits := api.Calls("editMessageReplyMarkup")
	require.Len(t, edits, 1)
	assert.Contains(t, edits[0].form["reply_markup"], ButtonNotifyOn)
	assert.Equal(t, MsgNotificationsOff, api.Calls("answerCallbackQuery")[0].form["text"])
}

func TestHandleCallback_BackAndUnknown(t *testing.T) {
	b := &mockBrowser{}
	h, api := newTestHandlers(t, b, &mockFavorites{})

	h.HandleCallback(context.Background(), nil, callbackUpdate("back"))
	h.HandleCallback(context.Background(), nil, callbackUpdate("fav_603"))

	assert.Equal(t, []int64{42}, b.started)
	assert.Equal(t, []string{MsgChooseAgain}, api.Texts())
	answers := api.Calls("answerCallbackQuery")
	require.Len(t, answers, 2)
	assert.Equal(t, UserMessage(moverrors.ErrUnknownAction), answers[1].form["text"])
}

func TestSendHTML(t *testing.T) {
	h, api := newTestHandlers(t, &mockBrowser{}, &mockFavorites{})

	require.NoError(t, h.SendHTML(context.Background(), 7, "🎬 Новые фильмы:"))
	assert.Error(t, h.SendHTML(context.Background(), 7, ""))

	calls := api.Calls("sendMessage")
	require.Len(t, calls, 1)
	assert.Equal(t, "7", calls[0].form["chat_id"])
}
