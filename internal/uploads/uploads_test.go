package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/consoletest"
	"github.com/fec-cms/console/internal/models"
	"github.com/fec-cms/console/pkg/storage"
)

func TestEventPrefix(t *testing.T) {
	p, err := EventPrefix("fec", "2025-jan-bjs-con")
	require.NoError(t, err)
	assert.Equal(t, "organizations/fec/2025-jan-bjs-con/", p)

	_, err = EventPrefix("", "2025-jan-bjs-con")
	assert.ErrorIs(t, err, ErrMissingSlug)
	_, err = EventPrefix("fec", " ")
	assert.ErrorIs(t, err, ErrMissingSlug)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "organizations/fec/cover-abc.webp", Key("organizations/fec/", "cover", "abc", "webp"))
	assert.Equal(t, "organizations/fec/abc.png", Key("organizations/fec/", "", "abc", "png"))
	assert.Equal(t, "p/a_b_c-x.png", Key("p/", "a/b.c", "x", "png"))
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), NewID())
	assert.NotEqual(t, NewID(), NewID())
}

type fakeStore struct {
	creds storage.Credentials
	body  []byte
	ct    string
	err   error
}

func (f *fakeStore) Upload(_ context.Context, creds storage.Credentials, contentType string, body io.Reader, _ int64) error {
	f.creds = creds
	f.ct = contentType
	f.body, _ = io.ReadAll(body)
	return f.err
}

func multipartRequest(t *testing.T, fields map[string]string, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="upload.bin"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write(data)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func setup(t *testing.T, store ObjectStore) *consoletest.Env {
	env := consoletest.New(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		consoletest.JSON(w, http.StatusOK, models.UploadSignature{
			TempSecretID: "id", TempSecretKey: "secret", SessionToken: "tok",
			Bucket: "fec-1250000000", Region: "ap-shanghai", Key: body["pathKey"],
		})
	})
	env.Router.POST("/uploads", NewHandler(env.API, store, 1024, zap.NewNop()).Upload)
	return env
}

func TestUploadSignsAndStores(t *testing.T) {
	store := &fakeStore{}
	env := setup(t, store)

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, multipartRequest(t, map[string]string{
		"scope": ScopeEvent, "orgSlug": "fec", "eventSlug": "2025-jan-bjs-con", "name": "cover",
	}, "image/webp", []byte("img")))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Regexp(t, `^organizations/fec/2025-jan-bjs-con/cover-[0-9a-f]{32}\.webp$`, store.creds.Key)
	assert.Equal(t, "tok", store.creds.SessionToken)
	assert.Equal(t, "image/webp", store.ct)
	assert.Equal(t, []byte("img"), store.body)

	calls := env.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/upload/sign", calls[0].Path)
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`"key":%q`, store.creds.Key))
}

func TestUploadRejectsMissingSlug(t *testing.T) {
	store := &fakeStore{}
	env := setup(t, store)

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, multipartRequest(t, map[string]string{"scope": ScopeEvent, "orgSlug": "fec"}, "image/png", []byte("x")))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, env.Calls())
}

func TestUploadRejectsType(t *testing.T) {
	env := setup(t, &fakeStore{})

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, multipartRequest(t, map[string]string{"scope": ScopeOrganization, "orgSlug": "fec"}, "application/zip", []byte("x")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.Calls())
}

func TestUploadRejectsLargeFile(t *testing.T) {
	env := setup(t, &fakeStore{})

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, multipartRequest(t, map[string]string{"scope": ScopeOrganization, "orgSlug": "fec"}, "image/png", make([]byte, 2048)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
