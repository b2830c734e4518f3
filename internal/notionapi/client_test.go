package notionapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mikecat1024/notion-to-markdown/internal/blocks"
	"github.com/mikecat1024/notion-to-markdown/internal/notionapi"
	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *notionapi.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := notionapi.New("secret-token",
		notionapi.WithBaseURL(server.URL),
		notionapi.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	return client
}

func TestListChildrenSendsAuthAndPagination(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/blocks/root-id/children", r.URL.Path)
		require.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		require.Equal(t, notionapi.DefaultVersion, r.Header.Get("Notion-Version"))
		require.Equal(t, "cursor-1", r.URL.Query().Get("start_cursor"))
		require.Equal(t, "50", r.URL.Query().Get("page_size"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"object":"list",
			"results":[
				{"object":"block","id":"b1","type":"heading_2","has_children":false,
				 "heading_2":{"rich_text":[{"type":"text","plain_text":"Intro"}]}},
				{"object":"block","id":"b2","type":"synced_block","has_children":true,
				 "synced_block":{"synced_from":null}}
			],
			"next_cursor":"cursor-2",
			"has_more":true
		}`))
	})

	page, err := client.ListChildren(context.Background(), "root-id", "cursor-1", 50)
	require.NoError(t, err)
	require.Len(t, page.Results, 2)
	require.Equal(t, blocks.TypeHeading2, page.Results[0].Type())
	require.True(t, page.Results[1].HasChildren())

	cursor, ok := page.Cursor()
	require.True(t, ok)
	require.Equal(t, "cursor-2", cursor)
}

func TestListChildrenOmitsEmptyQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"results":[],"next_cursor":null,"has_more":false}`))
	})

	page, err := client.ListChildren(context.Background(), "root-id", "", 0)
	require.NoError(t, err)
	require.Empty(t, page.Results)
}

func TestRateLimitedResponseMatchesSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"object":"error","status":429,"code":"rate_limited","message":"slow down"}`))
	})

	_, err := client.ListChildren(context.Background(), "root-id", "", 10)
	require.Error(t, err)
	require.True(t, errors.Is(err, interfaces.ErrRateLimited))
	require.Equal(t, http.StatusTooManyRequests, notionapi.StatusCode(err))

	var statusErr *notionapi.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, "rate_limited", statusErr.Code)
	require.Equal(t, "slow down", statusErr.Message)
}

func TestOtherStatusIsNotRateLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"object":"error","status":404,"code":"object_not_found","message":"nope"}`))
	})

	_, err := client.ListChildren(context.Background(), "missing", "", 10)
	require.Error(t, err)
	require.False(t, errors.Is(err, interfaces.ErrRateLimited))
	require.Equal(t, http.StatusNotFound, notionapi.StatusCode(err))
	require.Contains(t, err.Error(), "object_not_found")
}

func TestRetrievePageExtractsTitle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/pages/page-id", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"object":"page",
			"id":"59833787-2cf9-4fdf-8782-e53db20768a5",
			"url":"https://www.notion.so/Weekly-Notes-598337872cf94fdf8782e53db20768a5",
			"last_edited_time":"2024-05-01T10:00:00.000Z",
			"properties":{
				"Tags":{"type":"multi_select","multi_select":[]},
				"Name":{"type":"title","title":[
					{"type":"text","plain_text":"Weekly "},
					{"type":"text","plain_text":"Notes"}
				]}
			}
		}`))
	})

	page, err := client.RetrievePage(context.Background(), "page-id")
	require.NoError(t, err)
	require.Equal(t, "Weekly Notes", page.Title)
	require.Equal(t, "59833787-2cf9-4fdf-8782-e53db20768a5", page.ID)
	require.Contains(t, page.URL, "Weekly-Notes")
}

func TestNewRequiresToken(t *testing.T) {
	_, err := notionapi.New("  ")
	require.ErrorIs(t, err, notionapi.ErrMissingToken)
}

func TestNormalizeID(t *testing.T) {
	const want = "59833787-2cf9-4fdf-8782-e53db20768a5"
	inputs := []string{
		want,
		"598337872cf94fdf8782e53db20768a5",
		"https://www.notion.so/Weekly-Notes-598337872cf94fdf8782e53db20768a5",
		"https://www.notion.so/acme/598337872cf94fdf8782e53db20768a5?pvs=4",
		"https://www.notion.so/acme/59833787-2cf9-4fdf-8782-e53db20768a5",
	}
	for _, input := range inputs {
		got, err := notionapi.NormalizeID(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}

	_, err := notionapi.NormalizeID("not-an-id")
	require.ErrorIs(t, err, notionapi.ErrInvalidID)
	require.Equal(t, "598337872cf94fdf8782e53db20768a5", notionapi.CompactID(want))
}
