package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Raymond9734/community-site/internal/models"
	"github.com/Raymond9734/community-site/internal/service"
)

func TestEnquiryHandler_ShowForm(t *testing.T) {
	srv := newTestServer(t, instantSubmitter{}, nil)

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/enquiries", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	assertContains(t, rec.Body.String(),
		`id="enquiry-form"`,
		`<option value="sponsor">Sponsorship</option>`,
	)
}

func TestEnquiryHandler_SubmitForm(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(v map[string][]string)
		wantStatus int
		want       []string
		unwanted   []string
	}{
		{
			name:       "valid enquiry is confirmed and the form cleared",
			mutate:     func(v map[string][]string) {},
			wantStatus: http.StatusOK,
			want: []string{
				"Thank you for your enquiry, Jane Doe! We will get back to you shortly regarding our products and their availability.",
				`class="status-normal"`,
			},
			unwanted: []string{`value="jane@example.com"`, "Please correct the errors in the form."},
		},
		{
			name: "invalid fields are reported and values kept",
			mutate: func(v map[string][]string) {
				v["name"] = []string{"J"}
				v["email"] = []string{"bad-email"}
				v["inquiry_type"] = []string{""}
			},
			wantStatus: http.StatusUnprocessableEntity,
			want: []string{
				"Name must be at least 2 characters long.",
				"Please enter a valid email address.",
				"Please select an inquiry type.",
				"Please correct the errors in the form.",
				`class="status-error"`,
				`value="bad-email"`,
			},
			unwanted: []string{"Thank you for your enquiry"},
		},
		{
			name: "phone is optional",
			mutate: func(v map[string][]string) {
				v["phone"] = []string{""}
				v["inquiry_type"] = []string{"volunteer"}
			},
			wantStatus: http.StatusOK,
			want:       []string{"Thank you for your interest in volunteering!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, instantSubmitter{}, nil)
			values := validValues()
			tt.mutate(values)

			rec := srv.do(postForm(values))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			body := rec.Body.String()
			assertContains(t, body, tt.want...)
			assertNotContains(t, body, tt.unwanted...)
		})
	}
}

func TestEnquiryHandler_SubmitForm_IssuesSessionCookie(t *testing.T) {
	srv := newTestServer(t, instantSubmitter{}, nil)

	rec := srv.do(postForm(validValues()))

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionCookieName {
		t.Fatalf("cookies = %v, want one %s cookie", cookies, sessionCookieName)
	}

	req := postForm(validValues())
	req.AddCookie(cookies[0])
	rec = srv.do(req)
	if len(rec.Result().Cookies()) != 0 {
		t.Errorf("existing session was issued a new cookie")
	}
	if srv.sessions.Len() != 1 {
		t.Errorf("sessions = %d, want 1", srv.sessions.Len())
	}
}

func TestEnquiryHandler_SubmitAPI(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		want       *service.EnquiryResponse
	}{
		{
			name:       "accepted",
			body:       `{"name":"Sam","email":"sam@example.org","inquiry_type":"sponsor","message":"We would like to sponsor the fair."}`,
			wantStatus: http.StatusOK,
			want: &service.EnquiryResponse{
				Status:  models.OutcomeAccepted,
				Message: "Thank you for your enquiry, Sam! We appreciate your interest in sponsoring. Our team will reach out to discuss partnership opportunities.",
			},
		},
		{
			name:       "rejected",
			body:       `{"name":"Sam","email":"sam@example","phone":"12345","inquiry_type":"general","message":"Too short"}`,
			wantStatus: http.StatusUnprocessableEntity,
			want: &service.EnquiryResponse{
				Status:  models.OutcomeRejected,
				Message: service.StatusCorrectErrors,
				Errors: map[models.Field]string{
					models.FieldEmail:   "Please enter a valid email address.",
					models.FieldPhone:   "Please enter a 10-digit phone number (digits only).",
					models.FieldMessage: "Message must be between 10 and 500 characters.",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, instantSubmitter{}, nil)
			req := httptest.NewRequest(http.MethodPost, "/api/enquiries", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			rec := srv.do(req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body = %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var got service.EnquiryResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if diff := cmp.Diff(tt.want, &got); diff != "" {
				t.Errorf("response mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEnquiryHandler_SubmitAPI_InvalidJSON(t *testing.T) {
	srv := newTestServer(t, instantSubmitter{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/enquiries", strings.NewReader(`{"name":`))

	rec := srv.do(req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var got ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Error.Code != "INVALID_JSON" {
		t.Errorf("code = %q, want INVALID_JSON", got.Error.Code)
	}
}

func TestEnquiryHandler_SubmitAPI_RefusesOverlappingSubmission(t *testing.T) {
	submitter := &gatedSubmitter{started: make(chan struct{}), release: make(chan struct{})}
	srv := newTestServer(t, submitter, nil)
	body := `{"name":"Jo","email":"jo@example.com","inquiry_type":"general","message":"Hello there, neighbours."}`
	cookie := &http.Cookie{Name: sessionCookieName, Value: "0b7f3c1e-2a4d-4c5e-9f6a-7b8c9d0e1f2a"}

	newRequest := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/enquiries", strings.NewReader(body))
		req.AddCookie(cookie)
		return req
	}

	first := make(chan *httptest.ResponseRecorder)
	go func() {
		first <- srv.do(newRequest())
	}()
	<-submitter.started

	rec := srv.do(newRequest())
	if rec.Code != http.StatusConflict {
		t.Errorf("overlapping status = %d, want %d", rec.Code, http.StatusConflict)
	}

	close(submitter.release)
	if got := (<-first).Code; got != http.StatusOK {
		t.Errorf("first status = %d, want %d", got, http.StatusOK)
	}

	// A different session is not affected by another's in-flight submission
	other := httptest.NewRequest(http.MethodPost, "/api/enquiries", strings.NewReader(body))
	done := make(chan int)
	go func() {
		done <- srv.do(other).Code
	}()
	<-submitter.started
	if got := <-done; got != http.StatusOK {
		t.Errorf("other session status = %d, want %d", got, http.StatusOK)
	}
}

func TestEnquiryHandler_SubmitAPI_CookielessClientsKeyedByAddress(t *testing.T) {
	submitter := &gatedSubmitter{started: make(chan struct{}), release: make(chan struct{})}
	srv := newTestServer(t, submitter, nil)
	body := `{"name":"Jo","email":"jo@example.com","inquiry_type":"general","message":"Hello there, neighbours."}`

	newRequest := func(remoteAddr string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/enquiries", strings.NewReader(body))
		req.RemoteAddr = remoteAddr
		return req
	}

	first := make(chan *httptest.ResponseRecorder)
	go func() {
		first <- srv.do(newRequest("203.0.113.7:40001"))
	}()
	<-submitter.started

	rec := srv.do(newRequest("203.0.113.7:40002"))
	if rec.Code != http.StatusConflict {
		t.Errorf("same client status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("API response issued a session cookie")
	}

	other := make(chan int)
	go func() {
		other <- srv.do(newRequest("198.51.100.2:40001")).Code
	}()
	<-submitter.started

	close(submitter.release)
	if got := (<-first).Code; got != http.StatusOK {
		t.Errorf("first status = %d, want %d", got, http.StatusOK)
	}
	if got := <-other; got != http.StatusOK {
		t.Errorf("other client status = %d, want %d", got, http.StatusOK)
	}
}
