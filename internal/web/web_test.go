package web

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"foundly/internal/db"
	"foundly/internal/model"
	"foundly/internal/store"
)

const testSessionSecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()
	database := db.NewTestDB(t)

	router, err := NewRouter(database, testSessionSecret)
	if err != nil {
		t.Fatalf("creating router: %v", err)
	}
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, database
}

// newClient returns a cookie-carrying client that follows redirects.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("creating cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

// newBareClient returns a client that does not follow redirects, for
// asserting on Location headers.
func newBareClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, client *http.Client, url string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(url, form)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return string(data)
}

func signupAndLogin(t *testing.T, server *httptest.Server, client *http.Client, name, email, phone, password string) {
	t.Helper()
	resp := postForm(t, client, server.URL+"/signup", url.Values{
		"name":     {name},
		"email":    {email},
		"phone":    {phone},
		"password": {password},
	})
	resp.Body.Close()

	resp = postForm(t, client, server.URL+"/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login after signup failed: %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	server, _ := setupTestServer(t)
	client := newBareClient()

	for _, path := range []string{"/", "/browser", "/report", "/reportfnd", "/claims"} {
		resp, err := client.Get(server.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusSeeOther {
			t.Errorf("GET %s: expected 303, got %d", path, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/login" {
			t.Errorf("GET %s: expected redirect to /login, got %q", path, loc)
		}
	}
}

func TestAdminRoutesRedirectToAdminLogin(t *testing.T) {
	server, _ := setupTestServer(t)
	client := newBareClient()

	resp, err := client.Get(server.URL + "/admin/dashboard")
	if err != nil {
		t.Fatalf("GET /admin/dashboard: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login/admin" {
		t.Errorf("expected redirect to /login/admin, got %q", loc)
	}
}

func TestUserSessionDoesNotOpenAdminPages(t *testing.T) {
	server, _ := setupTestServer(t)
	client := newClient(t)
	signupAndLogin(t, server, client, "Ana", "ana@example.com", "555", "password")

	bare := newBareClient()
	bare.Jar = client.Jar
	resp, err := bare.Get(server.URL + "/admin/dashboard")
	if err != nil {
		t.Fatalf("GET /admin/dashboard: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("expected 303 for user on admin page, got %d", resp.StatusCode)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	server, _ := setupTestServer(t)
	client := newClient(t)

	form := url.Values{
		"name":     {"Ana"},
		"email":    {"ana@example.com"},
		"phone":    {"555"},
		"password": {"password"},
	}
	resp := postForm(t, client, server.URL+"/signup", form)
	resp.Body.Close()

	resp = postForm(t, client, server.URL+"/signup", form)
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Email already registered") {
		t.Error("expected duplicate email error on the page")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	server, _ := setupTestServer(t)
	client := newClient(t)
	signupAndLogin(t, server, client, "Ana", "ana@example.com", "555", "password")

	fresh := newClient(t)
	resp := postForm(t, fresh, server.URL+"/login", url.Values{
		"email":    {"ana@example.com"},
		"password": {"wrong"},
	})
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Invalid email or password") {
		t.Error("expected login error on the page")
	}
}

func TestUnknownItemDetail(t *testing.T) {
	server, _ := setupTestServer(t)
	client := newClient(t)
	signupAndLogin(t, server, client, "Ana", "ana@example.com", "555", "password")

	resp, err := client.Get(server.URL + "/browse/999")
	if err != nil {
		t.Fatalf("GET /browse/999: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown item, got %d", resp.StatusCode)
	}
}

// TestLostAndFoundFlow walks the full user journey: sign up, log in,
// report a lost item, find it in the browser, file a found report
// against it, and see the item resolved.
func TestLostAndFoundFlow(t *testing.T) {
	server, database := setupTestServer(t)
	client := newClient(t)
	signupAndLogin(t, server, client, "Ana", "ana@example.com", "555", "password")

	resp := postForm(t, client, server.URL+"/report", url.Values{
		"title":    {"Keys"},
		"location": {"Central Station"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("report submit: expected 200 after redirect, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err := client.Get(server.URL + "/browser?status=lost")
	if err != nil {
		t.Fatalf("GET /browser: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Keys") {
		t.Fatal("expected reported item in lost listing")
	}

	items, err := store.ListItems(context.Background(), database, model.ItemStatusLost)
	if err != nil {
		t.Fatalf("listing items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 lost item, got %d", len(items))
	}
	itemID := strconv.FormatInt(items[0].ID, 10)

	resp = postForm(t, client, server.URL+"/reportfnd", url.Values{
		"title":    {"Keys"},
		"item_id":  {itemID},
		"location": {"Lost property office"},
	})
	resp.Body.Close()

	got, err := store.GetItem(context.Background(), database, items[0].ID)
	if err != nil {
		t.Fatalf("getting item: %v", err)
	}
	if got.Status != model.ItemStatusFound {
		t.Errorf("expected item resolved to 'found', got %q", got.Status)
	}

	resp, err = client.Get(server.URL + "/browse/" + itemID)
	if err != nil {
		t.Fatalf("GET item detail: %v", err)
	}
	body = readBody(t, resp)
	if !strings.Contains(body, "Found") {
		t.Error("expected item detail to show found status")
	}
}

func TestClaimFlow(t *testing.T) {
	server, database := setupTestServer(t)
	owner := newClient(t)
	signupAndLogin(t, server, owner, "Ana", "ana@example.com", "555", "password")

	resp := postForm(t, owner, server.URL+"/report", url.Values{"title": {"Wallet"}})
	resp.Body.Close()
	items, err := store.ListItems(context.Background(), database, "")
	if err != nil || len(items) != 1 {
		t.Fatalf("expected 1 item, got %d (err %v)", len(items), err)
	}
	itemID := strconv.FormatInt(items[0].ID, 10)

	claimant := newClient(t)
	signupAndLogin(t, server, claimant, "Bor", "bor@example.com", "556", "password")

	resp = postForm(t, claimant, server.URL+"/browse/"+itemID+"/claim", url.Values{
		"message": {"That wallet is mine."},
	})
	resp.Body.Close()

	resp, err = claimant.Get(server.URL + "/claims")
	if err != nil {
		t.Fatalf("GET /claims: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Wallet") {
		t.Error("expected claim for Wallet in claimant's claim list")
	}

	// The item owner can read the claim thread too.
	claims, err := store.ListClaims(context.Background(), database)
	if err != nil || len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d (err %v)", len(claims), err)
	}
	claimID := strconv.FormatInt(claims[0].ID, 10)

	resp, err = owner.Get(server.URL + "/claims/" + claimID)
	if err != nil {
		t.Fatalf("GET claim detail: %v", err)
	}
	body = readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected owner to see claim, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "That wallet is mine.") {
		t.Error("expected claim message in thread")
	}

	// A third account is neither claimant nor owner.
	outsider := newClient(t)
	signupAndLogin(t, server, outsider, "Cene", "cene@example.com", "557", "password")
	resp, err = outsider.Get(server.URL + "/claims/" + claimID)
	if err != nil {
		t.Fatalf("GET claim detail: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for outsider, got %d", resp.StatusCode)
	}
}

func TestAdminDashboardAndClaims(t *testing.T) {
	server, database := setupTestServer(t)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.DefaultCost)
	if _, err := store.CreateAdmin(ctx, database, "admin@example.com", string(hash)); err != nil {
		t.Fatalf("creating admin: %v", err)
	}

	user := newClient(t)
	signupAndLogin(t, server, user, "Ana", "ana@example.com", "555", "password")
	resp := postForm(t, user, server.URL+"/report", url.Values{"title": {"Umbrella"}})
	resp.Body.Close()
	items, _ := store.ListItems(ctx, database, "")
	resp = postForm(t, user, server.URL+"/browse/"+strconv.FormatInt(items[0].ID, 10)+"/claim", url.Values{
		"message": {"Mine."},
	})
	resp.Body.Close()

	admin := newClient(t)
	resp = postForm(t, admin, server.URL+"/login/admin", url.Values{
		"email":    {"admin@example.com"},
		"password": {"admin-pass"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login failed: %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err := admin.Get(server.URL + "/admin/dashboard")
	if err != nil {
		t.Fatalf("GET /admin/dashboard: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on dashboard, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	claims, _ := store.ListClaims(ctx, database)
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	claimID := strconv.FormatInt(claims[0].ID, 10)

	resp = postForm(t, admin, server.URL+"/admin/claims/"+claimID+"/status", url.Values{
		"status": {model.ClaimStatusApproved},
	})
	resp.Body.Close()

	updated, err := store.GetClaim(ctx, database, claims[0].ID)
	if err != nil {
		t.Fatalf("getting claim: %v", err)
	}
	if updated.Status != model.ClaimStatusApproved {
		t.Errorf("expected claim approved, got %q", updated.Status)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	server, _ := setupTestServer(t)
	client := newClient(t)
	signupAndLogin(t, server, client, "Ana", "ana@example.com", "555", "password")

	resp, err := client.Get(server.URL + "/logout")
	if err != nil {
		t.Fatalf("GET /logout: %v", err)
	}
	resp.Body.Close()

	bare := newBareClient()
	bare.Jar = client.Jar
	resp, err = bare.Get(server.URL + "/browser")
	if err != nil {
		t.Fatalf("GET /browser: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("expected redirect after logout, got %d", resp.StatusCode)
	}
}
