package telegram

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Enabled(t *testing.T) {
	assert.False(t, NewNotifier("", "", "").Enabled())
	assert.False(t, NewNotifier("", "token", "").Enabled())
	assert.True(t, NewNotifier("", "token", "-100").Enabled())
	assert.Equal(t, DefaultBaseURL, NewNotifier("", "t", "c").BaseURL)
}

func TestNotifier_NotifyDocument(t *testing.T) {
	type received struct {
		path, chatID, caption, filename, contentType string
		data                                         []byte
	}
	got := make(chan received, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("document")
		if !assert.NoError(t, err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(f)
		got <- received{
			path:        r.URL.Path,
			chatID:      r.FormValue("chat_id"),
			caption:     r.FormValue("caption"),
			filename:    hdr.Filename,
			contentType: hdr.Header.Get("Content-Type"),
			data:        data,
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL+"/", "123:abc", "-1001")
	err := n.NotifyDocument(context.Background(), "Contrat_3240-80032496925.pdf", "Nouveau contrat", []byte("%PDF-1.3"))
	require.NoError(t, err)

	r := <-got
	assert.Equal(t, "/bot123:abc/sendDocument", r.path)
	assert.Equal(t, "-1001", r.chatID)
	assert.Equal(t, "Nouveau contrat", r.caption)
	assert.Equal(t, "Contrat_3240-80032496925.pdf", r.filename)
	assert.Equal(t, "application/pdf", r.contentType)
	assert.Equal(t, "%PDF-1.3", string(r.data))
}

func TestNotifier_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botbad/sendDocument":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"ok":false,"description":"Unauthorized"}`))
		default:
			_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
		}
	}))
	defer srv.Close()

	err := NewNotifier(srv.URL, "bad", "1").NotifyDocument(context.Background(), "a.pdf", "", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")

	err = NewNotifier(srv.URL, "good", "1").NotifyDocument(context.Background(), "a.pdf", "", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestNotifier_TransportErrorHidesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	const token = "123456:SECRET-bot-token"
	err := NewNotifier(baseURL, token, "1").NotifyDocument(context.Background(), "a.pdf", "", []byte("x"))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), token)
	assert.Contains(t, err.Error(), "Post")
}
