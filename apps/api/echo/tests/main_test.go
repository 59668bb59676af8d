package tests

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/growthapp/garden/apps/api/echo"
	"github.com/growthapp/garden/apps/shared"
	"github.com/growthapp/garden/core"
	"github.com/growthapp/garden/core/user"
	"github.com/growthapp/garden/storage/database/inmem"
	"github.com/growthapp/garden/storage/repos"
	"github.com/growthapp/garden/tests"
)

const testPwd = "password"

var (
	conf    *core.Config
	app     *shared.App
	usrRepo user.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
	errNotFound     = httpErr{Error: "not found"}
)

func setup(t *testing.T) Server {
	conf = &core.Config{
		TestMode:  true,
		AppName:   "Growth Garden",
		SecretKey: "s3cr3t-for-tests",
		Server: core.ServerConfig{
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 24 * time.Hour,
		},
	}

	// set up store & services
	store := inmemdb.NewStore()
	usrRepo = repos.NewUserRepository(store)
	var err error
	app, err = shared.NewAppWithStore(conf, testutil.NopLogger{}, store, nil)
	if err != nil {
		t.Fatalf("NewAppWithStore() failed: %v", err)
	}
	validate, translator := testutil.NewValidator()

	// set up server
	return NewServer(
		ServerDeps{
			Conf:        conf,
			Logger:      testutil.NopLogger{},
			UserSvc:     app.UserSvc,
			GrowthSvc:   app.GrowthSvc,
			Games:       app.Games,
			Points:      app.Points,
			GameContent: app.Content,
			Inbox:       app.Inbox,
			Validate:    validate,
			Translator:  translator,
			NewRand:     func() *rand.Rand { return rand.New(rand.NewSource(42)) },
		},
	)
}

// createFamily creates an active parent with one child, and an admin.
func createFamily(t *testing.T) (parent, child, admin user.User) {
	parent = testutil.CreateUser(t, usrRepo, "p1", "Sarah", "sarah@test.cd", testPwd, user.RoleParent, "", true)
	child = testutil.CreateUser(t, usrRepo, "c1", "Alex", "alex@test.cd", testPwd, user.RoleChild, parent.ID, true)
	admin = testutil.CreateUser(t, usrRepo, "a1", "Admin", "admin@test.cd", testPwd, user.RoleAdmin, "", true)
	return
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// do serves a single request and decodes the JSON response body into v, if given.
func do(t *testing.T, srv Server, method, path, token string, body []byte, v ...interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req, rec := newAuthRequest(method, path, token, body)
	srv.ServeHTTP(rec, req)
	if len(v) > 0 && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), v[0]); err != nil {
			t.Fatalf("json.Unmarshal(%s) failed: %v", rec.Body.String(), err)
		}
	}
	return rec
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(conf, usr)
	token, err := GenerateToken(conf, claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHttpTests(t *testing.T, srv Server, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		method := tt.method
		if method == "" {
			method = http.MethodGet
		}
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
			srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_home(t *testing.T) {
	srv := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Growth Garden API!", rec.Body.String())
}
