package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"bankportal/internal/models"
	"bankportal/internal/services"
)

type memVerificationStore struct {
	records map[string]*models.EmailVerification
}

func newMemVerificationStore() *memVerificationStore {
	return &memVerificationStore{records: map[string]*models.EmailVerification{}}
}

func (m *memVerificationStore) GetByEmail(email string) (*models.EmailVerification, error) {
	v, ok := m.records[email]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (m *memVerificationStore) Upsert(v *models.EmailVerification) error {
	cp := *v
	m.records[v.Email] = &cp
	return nil
}

func (m *memVerificationStore) IncrementAttempts(email string) (int, error) {
	v := m.records[email]
	v.Attempts++
	return v.Attempts, nil
}

func (m *memVerificationStore) DeleteByEmail(email string) error {
	delete(m.records, email)
	return nil
}

type recordingMailer struct {
	sentTo   []string
	sentCode []string
	fail     bool
}

func (r *recordingMailer) SendVerificationCode(email, code string) error {
	if r.fail {
		return errDelivery
	}
	r.sentTo = append(r.sentTo, email)
	r.sentCode = append(r.sentCode, code)
	return nil
}

func (r *recordingMailer) SendCardStatusEmail(email, cardType, status string) error { return nil }

var errDelivery = &deliveryError{}

type deliveryError struct{}

func (*deliveryError) Error() string { return "smtp unavailable" }

func newTestRouter(mailer services.EmailService, exposeCode bool) (*gin.Engine, *services.VerificationService) {
	gin.SetMode(gin.TestMode)
	svc := services.NewVerificationService(newMemVerificationStore())
	svc.Now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	h := NewVerifyHandler(svc, mailer, exposeCode)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"success": false, "error": "method not allowed"})
	})
	r.POST("/send-code", h.SendCode)
	r.POST("/verify-code", h.VerifyCode)
	return r, svc
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("response is not JSON: %q", w.Body.String())
	}
	return w, parsed
}

func TestSendCode_DeliversAndExposesDebugCode(t *testing.T) {
	mailer := &recordingMailer{}
	r, _ := newTestRouter(mailer, true)

	w, body := postJSON(t, r, "/send-code", gin.H{"email": "user@example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", w.Code, body)
	}
	if body["success"] != true {
		t.Errorf("success flag missing: %v", body)
	}
	code, ok := body["debugCode"].(string)
	if !ok || len(code) != 6 {
		t.Fatalf("debugCode missing or malformed: %v", body)
	}
	if len(mailer.sentTo) != 1 || mailer.sentTo[0] != "user@example.com" || mailer.sentCode[0] != code {
		t.Errorf("mailer not called with the issued code: %+v", mailer)
	}
}

func TestSendCode_HidesCodeByDefault(t *testing.T) {
	r, _ := newTestRouter(&recordingMailer{}, false)
	w, body := postJSON(t, r, "/send-code", gin.H{"email": "user@example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if _, present := body["debugCode"]; present {
		t.Error("debugCode leaked with expose_code off")
	}
}

func TestSendCode_Validation(t *testing.T) {
	r, _ := newTestRouter(&recordingMailer{}, true)

	cases := []struct {
		name string
		body any
		want string
	}{
		{"missing email", gin.H{}, "email is required"},
		{"malformed email", gin.H{"email": "nope"}, "invalid email address"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := postJSON(t, r, "/send-code", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", w.Code)
			}
			if body["success"] != false {
				t.Errorf("success must be false: %v", body)
			}
			if !strings.Contains(body["error"].(string), tc.want) {
				t.Errorf("error = %v, want %q", body["error"], tc.want)
			}
		})
	}
}

func TestSendCode_MailFailureIs500(t *testing.T) {
	r, _ := newTestRouter(&recordingMailer{fail: true}, true)
	w, body := postJSON(t, r, "/send-code", gin.H{"email": "user@example.com"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, body = %v", w.Code, body)
	}
	if body["success"] != false {
		t.Errorf("success must be false: %v", body)
	}
}

func TestVerifyCode_RoundTrip(t *testing.T) {
	mailer := &recordingMailer{}
	r, _ := newTestRouter(mailer, true)

	_, sendBody := postJSON(t, r, "/send-code", gin.H{"email": "user@example.com"})
	code := sendBody["debugCode"].(string)

	w, body := postJSON(t, r, "/verify-code", gin.H{"email": "user@example.com", "code": code})
	if w.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("verify failed: %d %v", w.Code, body)
	}

	// consumed: same code again is rejected
	w, body = postJSON(t, r, "/verify-code", gin.H{"email": "user@example.com", "code": code})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second verify: status = %d", w.Code)
	}
	if !strings.Contains(body["error"].(string), "no code requested") {
		t.Errorf("error = %v", body["error"])
	}
}

func TestVerifyCode_ErrorTexts(t *testing.T) {
	r, _ := newTestRouter(&recordingMailer{}, true)
	_, sendBody := postJSON(t, r, "/send-code", gin.H{"email": "user@example.com"})
	code := sendBody["debugCode"].(string)
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	cases := []struct {
		name string
		body gin.H
		want string
	}{
		{"missing fields", gin.H{"email": "user@example.com"}, "email and code are required"},
		{"malformed code", gin.H{"email": "user@example.com", "code": "12ab"}, "code must be 6 digits"},
		{"unknown address", gin.H{"email": "other@example.com", "code": "123456"}, "no code requested"},
		{"wrong code", gin.H{"email": "user@example.com", "code": wrong}, "2 attempt(s) remaining"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := postJSON(t, r, "/verify-code", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", w.Code)
			}
			if !strings.Contains(body["error"].(string), tc.want) {
				t.Errorf("error = %v, want substring %q", body["error"], tc.want)
			}
		})
	}
}

func TestWrongMethodIs405(t *testing.T) {
	r, _ := newTestRouter(&recordingMailer{}, true)
	req := httptest.NewRequest(http.MethodGet, "/send-code", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
}
