package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"iea/src/db"
	"iea/src/lib"
	"iea/src/lib/storage"
	"iea/src/middlewares"
	"iea/src/models"
	"iea/src/types"
	"iea/src/utils"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "test-admin-password"
	testWebhookSecret = "whsec_test"
)

type TestSuite struct {
	suite.Suite
	DB      *gorm.DB
	Token   *string
	Uploads string
}

func (s *TestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-jwt-secret")
	os.Setenv("ADMIN_EMAIL", testAdminEmail)
	os.Setenv("ADMIN_PASSWORD", testAdminPassword)
	os.Setenv("PAYCHANGU_WEBHOOK_SECRET", testWebhookSecret)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("mobilemoney", mobileMoneyValidatorFunc)
	}

	d, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("error opening test database: %s", err.Error())
	}
	inner, err := d.DB()
	if err != nil {
		log.Fatalf("error accessing inner db instance: %s", err.Error())
	}
	inner.SetMaxOpenConns(1)
	db.NewDB(d)
	s.DB = d

	err = d.AutoMigrate(
		&models.Ticket{},
		&models.Message{},
		&models.Sponsor{},
		&models.Speaker{},
		&models.TeamMember{},
		&models.Testimonial{},
		&models.Story{},
		&models.Highlight{},
		&models.SummitInfo{},
		&models.RegistrationConfig{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	uploads, err := os.MkdirTemp("", "uploads")
	if err != nil {
		log.Fatalf("error creating uploads dir: %s", err.Error())
	}
	s.Uploads = uploads
	storage.NewBackend(storage.NewLocalBackend(uploads))

	router := setupRouter()
	adminAuthRoutes(router)
	w := httptest.NewRecorder()
	body, _ := json.Marshal(map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	req, _ := http.NewRequest("POST", "/api/admin/login", bytes.NewReader(body))
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		log.Fatalf("could not log in admin: status %d", w.Code)
	}
	token := gjson.Get(w.Body.String(), "token").String()
	s.Token = &token
}

func (s *TestSuite) TearDownSuite() {
	inner, err := s.DB.DB()
	if err != nil {
		log.Printf("Error accessing inner db instance: %s\n", err.Error())
		return
	}
	inner.Close()
	os.RemoveAll(s.Uploads)
}

func (s *TestSuite) appRouter() *gin.Engine {
	router := setupRouter()
	admin := router.Group("/api")
	admin.Use(middlewares.AdminAuth)

	paychanguRoutes(router)
	ticketPageRoute(router)
	adminAuthRoutes(router)
	ticketHandlers(router, admin)
	messageHandlers(router, admin)
	cmsHandlers(router, admin)
	summitHandlers(router, admin)
	return router
}

func jsonRequest(method string, target string, payload any) *http.Request {
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(target string, fields map[string]string, fileField string, fileName string, token string) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	if fileField != "" {
		fw, _ := mw.CreateFormFile(fileField, fileName)
		fw.Write([]byte("not really an image"))
	}
	mw.Close()
	req, _ := http.NewRequest("POST", target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	return req
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestAdminLogin() {
	router := s.appRouter()

	s.Run("Should reject wrong credentials", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest("POST", "/api/admin/login", map[string]string{
			"email":    testAdminEmail,
			"password": "wrong",
		}))
		assert.Equal(s.T(), 401, w.Code)
	})

	s.Run("Should return a token for the configured admin", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest("POST", "/api/admin/login", map[string]string{
			"email":    testAdminEmail,
			"password": testAdminPassword,
		}))
		assert.Equal(s.T(), 200, w.Code)
		assert.NotEmpty(s.T(), gjson.Get(w.Body.String(), "token").String())
	})
}

func (s *TestSuite) TestAdminGuard() {
	router := s.appRouter()

	s.Run("Should reject requests without a token", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/tickets", nil)
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 401, w.Code)
	})

	s.Run("Should reject garbage tokens", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/tickets", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 401, w.Code)
	})

	s.Run("Should accept the issued token", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/tickets", nil)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *s.Token))
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 200, w.Code)
	})
}

func (s *TestSuite) TestInitiatePayment() {
	router := s.appRouter()

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(s.T(), "/mobile-money/pay", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"success","message":"Payment initiated"}`)
	}))
	defer gateway.Close()
	lib.NewPayChanguClient(&lib.PayChanguClient{BaseURL: gateway.URL, SecretKey: "sk_test"})
	defer lib.NewPayChanguClient(nil)

	s.Run("Should start a payment and return a reference", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest("POST", "/api/paychangu/initiate", map[string]string{
			"fullName": "Jane Doe",
			"email":    "jane@example.com",
			"phone":    "0999000000",
			"method":   "airtel_money",
		}))
		assert.Equal(s.T(), 200, w.Code)
		res := w.Body.String()
		assert.True(s.T(), gjson.Get(res, "success").Bool())
		assert.NotEmpty(s.T(), gjson.Get(res, "reference").String())
		assert.Equal(s.T(), "success", gjson.Get(res, "payment.status").String())
	})

	s.Run("Should reject unsupported payment methods", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest("POST", "/api/paychangu/initiate", map[string]string{
			"fullName": "Jane Doe",
			"email":    "jane@example.com",
			"phone":    "0999000000",
			"method":   "cash",
		}))
		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should surface gateway failures as 500", func() {
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"status":"failed","message":"insufficient funds"}`)
		}))
		defer failing.Close()
		lib.NewPayChanguClient(&lib.PayChanguClient{BaseURL: failing.URL, SecretKey: "sk_test"})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest("POST", "/api/paychangu/initiate", map[string]string{
			"fullName": "Jane Doe",
			"email":    "jane@example.com",
			"phone":    "0999000000",
			"method":   "mpamba",
		}))
		assert.Equal(s.T(), 500, w.Code)
	})
}

func (s *TestSuite) webhookPayload(reference string, status string) map[string]any {
	return map[string]any{
		"status":    status,
		"reference": reference,
		"metadata": map[string]string{
			"fullName":    "Jane Doe",
			"email":       "jane@example.com",
			"institution": "Example University",
			"course":      "Economics",
		},
	}
}

func (s *TestSuite) ticketCount(reference string) int64 {
	var count int64
	s.DB.Model(&models.Ticket{}).Where(&models.Ticket{TransactionID: reference}).Count(&count)
	return count
}

func (s *TestSuite) TestWebhook() {
	router := s.appRouter()

	s.Run("Should reject an invalid signature", func() {
		reference := "ref-bad-signature"
		req := jsonRequest("POST", "/api/paychangu/webhook", s.webhookPayload(reference, "success"))
		req.Header.Set(paychanguSignatureHeader, "forged")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 401, w.Code)
		assert.Equal(s.T(), int64(0), s.ticketCount(reference))
	})

	s.Run("Should acknowledge non-success callbacks without a ticket", func() {
		reference := "ref-failed"
		req := jsonRequest("POST", "/api/paychangu/webhook", s.webhookPayload(reference, "FAILED"))
		req.Header.Set(paychanguSignatureHeader, testWebhookSecret)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 200, w.Code)
		assert.True(s.T(), gjson.Get(w.Body.String(), "received").Bool())
		assert.Equal(s.T(), int64(0), s.ticketCount(reference))
	})

	s.Run("Should reject callbacks missing registrant metadata", func() {
		payload := map[string]any{
			"status":    "success",
			"reference": "ref-no-metadata",
			"metadata":  map[string]string{"institution": "Example University"},
		}
		req := jsonRequest("POST", "/api/paychangu/webhook", payload)
		req.Header.Set(paychanguSignatureHeader, testWebhookSecret)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 400, w.Code)
		assert.Equal(s.T(), int64(0), s.ticketCount("ref-no-metadata"))
	})

	s.Run("Should issue exactly one ticket per reference", func() {
		reference := "ref-idempotent"
		req := jsonRequest("POST", "/api/paychangu/webhook", s.webhookPayload(reference, "success"))
		req.Header.Set(paychanguSignatureHeader, testWebhookSecret)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 200, w.Code)
		assert.True(s.T(), gjson.Get(w.Body.String(), "received").Bool())

		var ticket models.Ticket
		err := s.DB.Where(&models.Ticket{TransactionID: reference}).First(&ticket).Error
		assert.Nil(s.T(), err)
		assert.Equal(s.T(), types.TICKET_PAID, ticket.Status)
		assert.False(s.T(), ticket.Used)
		assert.NotEmpty(s.T(), ticket.TicketID)
		assert.True(s.T(), strings.HasPrefix(ticket.QRCode, "data:image/jpeg;base64,"))

		req = jsonRequest("POST", "/api/paychangu/webhook", s.webhookPayload(reference, "success"))
		req.Header.Set(paychanguSignatureHeader, testWebhookSecret)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), int64(1), s.ticketCount(reference))
	})
}

// A ticket inserted behind the webhook's pre-insert lookup must be caught
// by the unique index on transaction_id, not create a second row.
func (s *TestSuite) TestDuplicateReferenceInsert() {
	md := &types.WebhookMetadata{
		FullName: "Race Guest",
		Email:    "race@example.com",
	}
	_, err := utils.IssueTicket(md, "ref-race")
	assert.Nil(s.T(), err)

	_, err = utils.IssueTicket(md, "ref-race")
	assert.True(s.T(), errors.Is(err, gorm.ErrDuplicatedKey))
	assert.Equal(s.T(), int64(1), s.ticketCount("ref-race"))
}

func (s *TestSuite) TestTicketPage() {
	router := s.appRouter()

	ticket, err := utils.IssueTicket(&types.WebhookMetadata{
		FullName: "Page Holder",
		Email:    "holder@example.com",
	}, "ref-ticket-page")
	assert.Nil(s.T(), err)

	s.Run("Should render the ticket", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", fmt.Sprintf("/ticket/%s", ticket.TicketID), nil)
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 200, w.Code)
		body := w.Body.String()
		assert.Contains(s.T(), body, ticket.TicketID)
		assert.Contains(s.T(), body, "Page Holder")
		assert.Contains(s.T(), body, "data:image/jpeg;base64,")
	})

	s.Run("Should return 404 for an unknown ticket", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ticket/does-not-exist", nil)
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 404, w.Code)
	})
}

func (s *TestSuite) TestTicketRedemption() {
	router := s.appRouter()

	ticket, err := utils.IssueTicket(&types.WebhookMetadata{
		FullName: "Door Guest",
		Email:    "guest@example.com",
	}, "ref-redemption")
	assert.Nil(s.T(), err)

	s.Run("Should mark the ticket as used", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", fmt.Sprintf("/api/tickets/%s/use", ticket.TicketID), nil)
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 200, w.Code)
		res := w.Body.String()
		assert.Equal(s.T(), "Ticket marked as used", gjson.Get(res, "message").String())
		assert.True(s.T(), gjson.Get(res, "ticket.used").Bool())
	})

	s.Run("Should report an already used ticket", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", fmt.Sprintf("/api/tickets/%s/use", ticket.TicketID), nil)
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), "Ticket already used", gjson.Get(w.Body.String(), "message").String())
	})

	s.Run("Should return 404 for an unknown ticket", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/tickets/unknown/use", nil)
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 404, w.Code)
	})
}

func (s *TestSuite) TestTicketListSorted() {
	router := s.appRouter()

	_, err := utils.IssueTicket(&types.WebhookMetadata{FullName: "Zed Last", Email: "zed@example.com"}, "ref-sort-z")
	assert.Nil(s.T(), err)
	_, err = utils.IssueTicket(&types.WebhookMetadata{FullName: "Anna First", Email: "anna@example.com"}, "ref-sort-a")
	assert.Nil(s.T(), err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/tickets", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *s.Token))
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 200, w.Code)

	names := []string{}
	for _, t := range gjson.Parse(w.Body.String()).Array() {
		names = append(names, t.Get("fullName").String())
	}
	assert.GreaterOrEqual(s.T(), len(names), 2)
	for i := 1; i < len(names); i++ {
		assert.LessOrEqual(s.T(), names[i-1], names[i])
	}
}

func (s *TestSuite) TestMessages() {
	router := s.appRouter()

	s.Run("Should save a contact message", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest("POST", "/api/messages", map[string]string{
			"name":    "Curious Visitor",
			"email":   "visitor@example.com",
			"message": "When does registration close?",
		}))
		assert.Equal(s.T(), 200, w.Code)
		assert.True(s.T(), gjson.Get(w.Body.String(), "success").Bool())
	})

	s.Run("Should reject a message without an email", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest("POST", "/api/messages", map[string]string{
			"name":    "Anonymous",
			"message": "hello",
		}))
		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should list messages for the admin", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/messages", nil)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *s.Token))
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 200, w.Code)
		res := gjson.Parse(w.Body.String()).Array()
		assert.GreaterOrEqual(s.T(), len(res), 1)
		assert.Equal(s.T(), "visitor@example.com", res[0].Get("email").String())
	})
}

func (s *TestSuite) TestSponsors() {
	router := s.appRouter()
	token := *s.Token

	s.Run("Should reject unauthenticated creation", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest("/api/sponsors", map[string]string{"name": "Acme"}, "logo", "acme.png", ""))
		assert.Equal(s.T(), 401, w.Code)
	})

	var sponsorId, logoUrl string
	s.Run("Should create a sponsor with a logo", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest("/api/sponsors", map[string]string{"name": "Acme Capital"}, "logo", "acme.png", token))
		assert.Equal(s.T(), 200, w.Code)
		res := w.Body.String()
		sponsorId = gjson.Get(res, "data.id").String()
		logoUrl = gjson.Get(res, "data.logoUrl").String()
		assert.NotEmpty(s.T(), sponsorId)
		assert.True(s.T(), strings.HasPrefix(logoUrl, "/uploads/"))
		assert.Contains(s.T(), logoUrl, "acme-capital")

		_, err := os.Stat(path.Join(s.Uploads, strings.TrimPrefix(logoUrl, "/uploads/")))
		assert.Nil(s.T(), err)
	})

	s.Run("Should list sponsors publicly", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/sponsors", nil)
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 200, w.Code)
		found := false
		for _, sp := range gjson.Parse(w.Body.String()).Array() {
			if sp.Get("id").String() == sponsorId {
				found = true
			}
		}
		assert.True(s.T(), found)
	})

	s.Run("Should delete the sponsor and its asset", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", fmt.Sprintf("/api/sponsors/%s", sponsorId), nil)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 200, w.Code)

		_, err := os.Stat(path.Join(s.Uploads, strings.TrimPrefix(logoUrl, "/uploads/")))
		assert.NotNil(s.T(), err)
	})

	s.Run("Should return 404 for a deleted sponsor", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", fmt.Sprintf("/api/sponsors/%s", sponsorId), nil)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 404, w.Code)
	})
}

func (s *TestSuite) TestStories() {
	router := s.appRouter()
	token := *s.Token

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("/api/stories", map[string]string{
		"title":      "Founders on the rise",
		"excerpt":    "A recap of the pitch night.",
		"date":       "2025-08-01",
		"categories": "startups, funding ,community",
	}, "storyImg", "story.jpg", token))
	assert.Equal(s.T(), 200, w.Code)

	res := w.Body.String()
	categories := gjson.Get(res, "data.categories").Array()
	assert.Len(s.T(), categories, 3)
	assert.Equal(s.T(), "funding", categories[1].String())

	w = httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/stories", nil)
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 200, w.Code)
	assert.GreaterOrEqual(s.T(), len(gjson.Parse(w.Body.String()).Array()), 1)
}

func (s *TestSuite) TestTeamMembers() {
	router := s.appRouter()
	token := *s.Token

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("/api/team-members", map[string]string{
		"name": "Thoko Banda",
		"role": "Programs Lead",
		"bio":  "Runs the accelerator track.",
	}, "teamImg", "thoko.jpg", token))
	assert.Equal(s.T(), 200, w.Code)
	memberId := gjson.Get(w.Body.String(), "data.id").String()
	assert.NotEmpty(s.T(), memberId)

	w = httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/team", nil)
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 200, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", fmt.Sprintf("/api/team/%s", memberId), nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestSummitInfoSingleton() {
	router := s.appRouter()
	token := *s.Token

	first := map[string]string{
		"headline": "First headline",
		"location": "Lilongwe",
		"stats":    `[{"label":"Attendees","value":"500"}]`,
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("/api/summit-info", first, "heroImage", "hero.jpg", token))
	assert.Equal(s.T(), 200, w.Code)

	second := map[string]string{
		"headline": "Second headline",
		"location": "Blantyre",
		"stats":    `[{"label":"Speakers","value":"24"},{"label":"Attendees","value":"800"}]`,
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("/api/summit-info", second, "", "", token))
	assert.Equal(s.T(), 200, w.Code)

	var count int64
	s.DB.Model(&models.SummitInfo{}).Count(&count)
	assert.Equal(s.T(), int64(1), count)

	w = httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/summit-info", nil)
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 200, w.Code)
	res := w.Body.String()
	assert.Equal(s.T(), "Second headline", gjson.Get(res, "headline").String())
	assert.Len(s.T(), gjson.Get(res, "stats").Array(), 2)
	// A save without a new hero keeps the previous upload.
	assert.True(s.T(), strings.HasPrefix(gjson.Get(res, "heroImage").String(), "/uploads/"))
}

func (s *TestSuite) TestRegistrationConfigSingleton() {
	router := s.appRouter()
	token := *s.Token

	post := func(title string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := jsonRequest("POST", "/api/registration-config", map[string]string{
			"title":          title,
			"description":    "Register for the summit",
			"successMessage": "See you there!",
		})
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(s.T(), 200, post("First title").Code)
	assert.Equal(s.T(), 200, post("Second title").Code)

	var count int64
	s.DB.Model(&models.RegistrationConfig{}).Count(&count)
	assert.Equal(s.T(), int64(1), count)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/registration-config", nil)
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "Second title", gjson.Get(w.Body.String(), "title").String())
}

func TestMainSuite(t *testing.T) {
	suite.Run(t, new(TestSuite))
}

// A webhook that cannot persist its ticket must fail with 500 so the gateway
// retries, instead of acknowledging a payment that was never recorded.
func TestWebhookPersistenceFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	os.Setenv("PAYCHANGU_WEBHOOK_SECRET", testWebhookSecret)

	mockConn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockConn}), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	db.NewDB(gormDB)
	defer db.NewDB(nil)

	mock.ExpectQuery(`SELECT (.+) FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tickets"`).
		WillReturnError(fmt.Errorf("connection reset by peer"))
	mock.ExpectRollback()

	router := setupRouter()
	paychanguRoutes(router)

	payload, _ := json.Marshal(map[string]any{
		"status":    "success",
		"reference": "ref-persist-failure",
		"metadata": map[string]string{
			"fullName": "Jane Doe",
			"email":    "jane@example.com",
		},
	})
	req, _ := http.NewRequest("POST", "/api/paychangu/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(paychanguSignatureHeader, testWebhookSecret)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 500, w.Code)
	assert.Nil(t, mock.ExpectationsWereMet())
}
