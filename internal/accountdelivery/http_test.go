package accountdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/internal/middleware"
	"github.com/go-petr/edupay/pkg/errorspkg"
	"github.com/go-petr/edupay/pkg/randompkg"
	"github.com/go-petr/edupay/pkg/tokenpkg"
	"github.com/go-petr/edupay/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("passcode", ValidPasscode); err != nil {
			panic(err)
		}
	}

	os.Exit(m.Run())
}

func randomAccount(role domain.Role) domain.AccountWithoutSecrets {
	return domain.AccountWithoutSecrets{
		Username:  randompkg.Username(),
		FullName:  randompkg.String(8),
		Email:     randompkg.Email(),
		Role:      role,
		Balance:   decimal.RequireFromString(randompkg.MoneyAmountBetween(1000, 10_000)),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

type testServer struct {
	router     *gin.Engine
	tokenMaker tokenpkg.Maker
}

func newTestServer(t *testing.T, service Service) testServer {
	t.Helper()

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker() returned error: %v", err)
	}

	h := NewHandler(service, tokenMaker, time.Minute)

	router := gin.New()
	router.POST("/accounts/login", h.Login)

	authRoutes := router.Group("/").Use(middleware.AuthMiddleware(tokenMaker))
	authRoutes.GET("/accounts/me", h.Me)
	authRoutes.POST("/accounts/password", h.ChangePassword)
	authRoutes.POST("/accounts/passcode", h.ChangePasscode)
	authRoutes.POST("/support", h.SendSupportMessage)

	router.POST("/admin/accounts",
		middleware.AuthMiddleware(tokenMaker),
		middleware.RequireRole(domain.RoleAdmin),
		h.Create)
	router.GET("/admin/support-messages",
		middleware.AuthMiddleware(tokenMaker),
		middleware.RequireRole(domain.RoleAdmin),
		h.ListSupportMessages)

	return testServer{router: router, tokenMaker: tokenMaker}
}

func (s testServer) do(t *testing.T, method, url string, body any, setupAuth func(r *http.Request) error) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Encoding request body error: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("Creating request error: %v", err)
	}

	if setupAuth != nil {
		if err := setupAuth(req); err != nil {
			t.Fatalf("setupAuth(%+v) returned error: %v", req, err)
		}
	}

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)

	return recorder
}

func decodeAccount(t *testing.T, recorder *httptest.ResponseRecorder) (web.Response, domain.AccountWithoutSecrets) {
	t.Helper()

	got := struct {
		Account domain.AccountWithoutSecrets `json:"account"`
	}{}
	res := web.Response{Data: &got}

	if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	return res, got.Account
}

func TestLogin(t *testing.T) {
	account := randomAccount(domain.RoleStudent)
	password := randompkg.String(8)

	type requestBody struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "OK",
			requestBody: requestBody{Username: account.Username, Password: password},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					CheckPassword(gomock.Any(), gomock.Eq(account.Username), gomock.Eq(password), gomock.Any()).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "MissingPassword",
			requestBody: requestBody{Username: account.Username},
			buildStubs: func(service *MockService) {
				service.EXPECT().CheckPassword(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Password field is required",
		},
		{
			name:        "WrongPassword",
			requestBody: requestBody{Username: account.Username, Password: "wrong-one"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					CheckPassword(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.AccountWithoutSecrets{}, domain.ErrWrongPassword)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrWrongPassword.Error(),
		},
		{
			name:        "RateLimited",
			requestBody: requestBody{Username: account.Username, Password: password},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					CheckPassword(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.AccountWithoutSecrets{}, domain.ErrRateLimited)
			},
			wantStatusCode: http.StatusTooManyRequests,
			wantError:      domain.ErrRateLimited.Error(),
		},
		{
			name:        "InternalError",
			requestBody: requestBody{Username: account.Username, Password: password},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					CheckPassword(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.AccountWithoutSecrets{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			service := NewMockService(ctrl)
			tc.buildStubs(service)

			s := newTestServer(t, service)
			recorder := s.do(t, http.MethodPost, "/accounts/login", tc.requestBody, nil)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res, got := decodeAccount(t, recorder)

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`resp.Error=%q, want %q`, res.Error, tc.wantError)
				}

				return
			}

			if diff := cmp.Diff(account, got); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}

			payload, err := s.tokenMaker.VerifyToken(res.AccessToken)
			if err != nil {
				t.Fatalf("VerifyToken(%q) returned error: %v", res.AccessToken, err)
			}

			if payload.Username != account.Username || payload.Role != string(account.Role) {
				t.Errorf("payload = %+v, want username %q and role %q", payload, account.Username, account.Role)
			}

			if res.AccessTokenExpiresAt == nil {
				t.Errorf("res.AccessTokenExpiresAt is nil")
			}
		})
	}
}

func TestMe(t *testing.T) {
	account := randomAccount(domain.RoleParent)

	testCases := []struct {
		name           string
		setupAuth      func(s testServer) func(r *http.Request) error
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			setupAuth: func(s testServer) func(r *http.Request) error {
				return func(r *http.Request) error {
					return middleware.AddAuthorization(r, s.tokenMaker, middleware.AuthTypeBearer, account.Username, string(account.Role), time.Minute)
				}
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Eq(account.Username)).Times(1).Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "NoAuthorization",
			setupAuth: func(s testServer) func(r *http.Request) error {
				return nil
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name: "NotFound",
			setupAuth: func(s testServer) func(r *http.Request) error {
				return func(r *http.Request) error {
					return middleware.AddAuthorization(r, s.tokenMaker, middleware.AuthTypeBearer, account.Username, string(account.Role), time.Minute)
				}
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Any()).Times(1).Return(domain.AccountWithoutSecrets{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			service := NewMockService(ctrl)
			tc.buildStubs(service)

			s := newTestServer(t, service)
			recorder := s.do(t, http.MethodGet, "/accounts/me", nil, tc.setupAuth(s))

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res, got := decodeAccount(t, recorder)
			if res.Error != tc.wantError {
				t.Errorf(`resp.Error=%q, want %q`, res.Error, tc.wantError)
			}

			if tc.wantStatusCode == http.StatusOK {
				if diff := cmp.Diff(account, got); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestChangeCredentials(t *testing.T) {
	username := randompkg.Username()

	testCases := []struct {
		name           string
		url            string
		requestBody    gin.H
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "PasswordOK",
			url:         "/accounts/password",
			requestBody: gin.H{"current_password": "secret1", "new_password": "secret2"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					ChangePassword(gomock.Any(), gomock.Eq(username), gomock.Any(), gomock.Eq("secret1"), gomock.Eq("secret2")).
					Times(1).
					Return(nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "PasswordTooShort",
			url:         "/accounts/password",
			requestBody: gin.H{"current_password": "secret1", "new_password": "abc"},
			buildStubs: func(service *MockService) {
				service.EXPECT().ChangePassword(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "NewPassword must be at least 6 characters long",
		},
		{
			name:        "PasswordWrong",
			url:         "/accounts/password",
			requestBody: gin.H{"current_password": "nope", "new_password": "secret2"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					ChangePassword(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.ErrWrongPassword)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrWrongPassword.Error(),
		},
		{
			name:        "PasscodeOK",
			url:         "/accounts/passcode",
			requestBody: gin.H{"current_passcode": "1234", "new_passcode": "4321"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					ChangePasscode(gomock.Any(), gomock.Eq(username), gomock.Any(), gomock.Eq("1234"), gomock.Eq("4321")).
					Times(1).
					Return(nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "PasscodeNotDigits",
			url:         "/accounts/passcode",
			requestBody: gin.H{"current_passcode": "1234", "new_passcode": "12a4"},
			buildStubs: func(service *MockService) {
				service.EXPECT().ChangePasscode(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "NewPasscode must be exactly 4 digits",
		},
		{
			name:        "PasscodeRateLimited",
			url:         "/accounts/passcode",
			requestBody: gin.H{"current_passcode": "0000", "new_passcode": "4321"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					ChangePasscode(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.ErrRateLimited)
			},
			wantStatusCode: http.StatusTooManyRequests,
			wantError:      domain.ErrRateLimited.Error(),
		},
		{
			name:        "PasscodeInternalError",
			url:         "/accounts/passcode",
			requestBody: gin.H{"current_passcode": "1234", "new_passcode": "4321"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					ChangePasscode(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			service := NewMockService(ctrl)
			tc.buildStubs(service)

			s := newTestServer(t, service)
			recorder := s.do(t, http.MethodPost, tc.url, tc.requestBody, func(r *http.Request) error {
				return middleware.AddAuthorization(r, s.tokenMaker, middleware.AuthTypeBearer, username, string(domain.RoleStudent), time.Minute)
			})

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			var res web.Response
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if res.Error != tc.wantError {
				t.Errorf(`resp.Error=%q, want %q`, res.Error, tc.wantError)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	account := randomAccount(domain.RoleStudent)

	validBody := func() gin.H {
		return gin.H{
			"username":  account.Username,
			"password":  "secret1",
			"passcode":  "1234",
			"full_name": account.FullName,
			"email":     account.Email,
			"role":      "student",
			"balance":   account.Balance.String(),
		}
	}

	testCases := []struct {
		name           string
		role           domain.Role
		requestBody    func() gin.H
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "OK",
			role:        domain.RoleAdmin,
			requestBody: validBody,
			buildStubs: func(service *MockService) {
				arg := domain.CreateAccountParams{
					Username: account.Username,
					Password: "secret1",
					Passcode: "1234",
					FullName: account.FullName,
					Email:    account.Email,
					Role:     domain.RoleStudent,
					Balance:  account.Balance.String(),
				}

				service.EXPECT().Create(gomock.Any(), gomock.Eq(arg)).Times(1).Return(account, nil)
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:        "NotAdmin",
			role:        domain.RoleInstitution,
			requestBody: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusForbidden,
			wantError:      middleware.ErrForbidden.Error(),
		},
		{
			name: "InvalidRole",
			role: domain.RoleAdmin,
			requestBody: func() gin.H {
				b := validBody()
				b["role"] = "teacher"

				return b
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Role must be one of: student parent institution admin",
		},
		{
			name: "InvalidEmail",
			role: domain.RoleAdmin,
			requestBody: func() gin.H {
				b := validBody()
				b["email"] = "not-an-email"

				return b
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Email must be a valid email",
		},
		{
			name:        "UsernameTaken",
			role:        domain.RoleAdmin,
			requestBody: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any()).Times(1).
					Return(domain.AccountWithoutSecrets{}, domain.ErrUsernameAlreadyExists)
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrUsernameAlreadyExists.Error(),
		},
		{
			name:        "InvalidBalance",
			role:        domain.RoleAdmin,
			requestBody: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any()).Times(1).
					Return(domain.AccountWithoutSecrets{}, domain.ErrInvalidAmount)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrInvalidAmount.Error(),
		},
		{
			name:        "InternalError",
			role:        domain.RoleAdmin,
			requestBody: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any()).Times(1).
					Return(domain.AccountWithoutSecrets{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			service := NewMockService(ctrl)
			tc.buildStubs(service)

			s := newTestServer(t, service)
			recorder := s.do(t, http.MethodPost, "/admin/accounts", tc.requestBody(), func(r *http.Request) error {
				return middleware.AddAuthorization(r, s.tokenMaker, middleware.AuthTypeBearer, "admin", string(tc.role), time.Minute)
			})

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res, got := decodeAccount(t, recorder)
			if res.Error != tc.wantError {
				t.Errorf(`resp.Error=%q, want %q`, res.Error, tc.wantError)
			}

			if tc.wantStatusCode == http.StatusCreated {
				if diff := cmp.Diff(account, got); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestSupportMessages(t *testing.T) {
	parent := randomAccount(domain.RoleParent)

	authAs := func(username string, role domain.Role) func(s testServer) func(r *http.Request) error {
		return func(s testServer) func(r *http.Request) error {
			return func(r *http.Request) error {
				return middleware.AddAuthorization(r, s.tokenMaker, middleware.AuthTypeBearer, username, string(role), time.Minute)
			}
		}
	}

	sent := domain.SupportMessage{
		ID:       1,
		Username: parent.Username,
		Name:     parent.FullName,
		Role:     parent.Role,
		Message:  "Balance looks wrong",
		Status:   domain.SupportStatusUnread,
	}

	testCases := []struct {
		name           string
		method         string
		url            string
		body           any
		setupAuth      func(s testServer) func(r *http.Request) error
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:      "Send",
			method:    http.MethodPost,
			url:       "/support",
			body:      gin.H{"message": "Balance looks wrong"},
			setupAuth: authAs(parent.Username, parent.Role),
			buildStubs: func(service *MockService) {
				service.EXPECT().SendSupportMessage(gomock.Any(), gomock.Eq(parent.Username), gomock.Eq("Balance looks wrong")).
					Times(1).Return(sent, nil)
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:      "SendEmpty",
			method:    http.MethodPost,
			url:       "/support",
			body:      gin.H{"message": ""},
			setupAuth: authAs(parent.Username, parent.Role),
			buildStubs: func(service *MockService) {
				service.EXPECT().SendSupportMessage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Message field is required",
		},
		{
			name:      "SendBlank",
			method:    http.MethodPost,
			url:       "/support",
			body:      gin.H{"message": "   "},
			setupAuth: authAs(parent.Username, parent.Role),
			buildStubs: func(service *MockService) {
				service.EXPECT().SendSupportMessage(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).
					Return(domain.SupportMessage{}, domain.ErrInvalidMessage)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrInvalidMessage.Error(),
		},
		{
			name:   "SendUnauthenticated",
			method: http.MethodPost,
			url:    "/support",
			body:   gin.H{"message": "Hi"},
			setupAuth: func(s testServer) func(r *http.Request) error {
				return nil
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().SendSupportMessage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name:      "List",
			method:    http.MethodGet,
			url:       "/admin/support-messages",
			setupAuth: authAs("admin", domain.RoleAdmin),
			buildStubs: func(service *MockService) {
				service.EXPECT().SupportMessages(gomock.Any()).Times(1).Return([]domain.SupportMessage{sent}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:      "ListNotAdmin",
			method:    http.MethodGet,
			url:       "/admin/support-messages",
			setupAuth: authAs("institution1", domain.RoleInstitution),
			buildStubs: func(service *MockService) {
				service.EXPECT().SupportMessages(gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusForbidden,
			wantError:      middleware.ErrForbidden.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			service := NewMockService(ctrl)
			tc.buildStubs(service)

			s := newTestServer(t, service)
			recorder := s.do(t, tc.method, tc.url, tc.body, tc.setupAuth(s))

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			got := struct {
				SupportMessage domain.SupportMessage   `json:"support_message"`
				Messages       []domain.SupportMessage `json:"messages"`
			}{}
			res := web.Response{Data: &got}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if res.Error != tc.wantError {
				t.Errorf(`resp.Error=%q, want %q`, res.Error, tc.wantError)
			}

			switch {
			case tc.wantStatusCode == http.StatusCreated:
				if diff := cmp.Diff(sent, got.SupportMessage); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			case tc.wantStatusCode == http.StatusOK:
				if diff := cmp.Diff([]domain.SupportMessage{sent}, got.Messages); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}
