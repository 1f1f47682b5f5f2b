// Package httpserver manages server creation and api routing.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/edupay/internal/accountdelivery"
	"github.com/go-petr/edupay/internal/accountservice"
	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/internal/eventpublisher"
	"github.com/go-petr/edupay/internal/gateway"
	"github.com/go-petr/edupay/internal/guard"
	"github.com/go-petr/edupay/internal/institutiondelivery"
	"github.com/go-petr/edupay/internal/ledgerdelivery"
	"github.com/go-petr/edupay/internal/ledgerrepo"
	"github.com/go-petr/edupay/internal/ledgerservice"
	"github.com/go-petr/edupay/internal/mailer"
	"github.com/go-petr/edupay/internal/metrics"
	"github.com/go-petr/edupay/internal/middleware"
	"github.com/go-petr/edupay/internal/paymentdelivery"
	"github.com/go-petr/edupay/internal/paymentservice"
	"github.com/go-petr/edupay/internal/portalrepo"
	"github.com/go-petr/edupay/internal/ratelimit"
	"github.com/go-petr/edupay/internal/receipt"
	"github.com/go-petr/edupay/pkg/configpkg"
	"github.com/go-petr/edupay/pkg/moneypkg"
	"github.com/go-petr/edupay/pkg/passpkg"
	"github.com/go-petr/edupay/pkg/tokenpkg"
)

// RedisKeyPrefix namespaces the rate limiter keys in Redis.
const RedisKeyPrefix = "edupay:guard:"

// ReminderHistorySize is how many reminders the server remembers.
const ReminderHistorySize = 500

// Server holds the ledger, handlers router and configuration.
type Server struct {
	Engine *gin.Engine
	Config configpkg.Config
	Ledger *ledgerrepo.RepoMem

	closers []io.Closer
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// Close releases the broker and cache connections the server opened.
func (s *Server) Close() error {
	var errs []error

	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (s *Server) limiter(config configpkg.Config) guard.Limiter {
	if config.RedisAddr == "" {
		return ratelimit.NewWindow(config.RateLimitAttempts, config.RateLimitWindow)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})
	s.closers = append(s.closers, rdb)

	return ratelimit.NewRedisWindow(rdb, config.RateLimitAttempts, config.RateLimitWindow, RedisKeyPrefix)
}

func (s *Server) publisher(config configpkg.Config, logger zerolog.Logger) ledgerservice.Publisher {
	brokers := config.Brokers()
	if len(brokers) == 0 {
		return eventpublisher.Nop{}
	}

	k := eventpublisher.NewKafka(brokers, config.KafkaTopic, logger)
	s.closers = append(s.closers, k)

	return k
}

func newMailer(config configpkg.Config) ledgerservice.Mailer {
	if config.SMTPHost == "" {
		return mailer.Nop{}
	}

	return mailer.NewSMTP(mailer.Config{
		Host:     config.SMTPHost,
		Port:     config.SMTPPort,
		Username: config.SMTPUsername,
		Password: config.SMTPPassword,
		From:     config.SMTPFrom,
	}, config.InstitutionName, config.Currency)
}

// gateways returns a real adapter for every gateway with credentials and, in
// demo mode, a mock for every gateway without.
func gateways(config configpkg.Config) ([]paymentservice.Gateway, error) {
	var result []paymentservice.Gateway

	configured := map[string]paymentservice.Gateway{}

	if config.RazorpayKeyID != "" && config.RazorpayKeySecret != "" {
		configured[gateway.IDRazorpay] = gateway.NewRazorpay(config.RazorpayKeyID, config.RazorpayKeySecret, config.RazorpayBaseURL)
	}

	if config.StripeSecretKey != "" {
		configured[gateway.IDStripe] = gateway.NewStripe(config.StripeSecretKey, config.StripePublishableKey, nil)
	}

	if config.PayPalClientID != "" && config.PayPalClientSecret != "" {
		p, err := gateway.NewPayPal(config.PayPalClientID, config.PayPalClientSecret, config.PayPalBaseURL)
		if err != nil {
			return nil, fmt.Errorf("cannot create paypal client: %w", err)
		}

		configured[gateway.IDPayPal] = p
	}

	for _, m := range gateway.Demo() {
		id := m.Info().ID

		switch g, ok := configured[id]; {
		case ok:
			result = append(result, g)
		case config.DemoMode:
			result = append(result, m)
		}
	}

	return result, nil
}

func limits(config configpkg.Config) (paymentservice.Limits, error) {
	var (
		l   paymentservice.Limits
		err error
	)

	if l.Min, err = moneypkg.ParseNonNegative(config.MinPaymentAmount); err != nil {
		return l, fmt.Errorf("MIN_PAYMENT_AMOUNT: %w", err)
	}

	if l.Max, err = moneypkg.ParseNonNegative(config.MaxPaymentAmount); err != nil {
		return l, fmt.Errorf("MAX_PAYMENT_AMOUNT: %w", err)
	}

	if l.Max.IsPositive() && l.Max.LessThan(l.Min) {
		return l, errors.New("MAX_PAYMENT_AMOUNT is below MIN_PAYMENT_AMOUNT")
	}

	if l.Min.IsZero() {
		l.Min = decimal.New(1, -moneypkg.Scale)
	}

	return l, nil
}

// feeStructure reads FEE_STRUCTURE_FILE. Without a file the structure starts empty.
func feeStructure(config configpkg.Config) (domain.FeeStructure, error) {
	result := domain.FeeStructure{}

	if config.FeeStructureFile == "" {
		return result, nil
	}

	classes, err := configpkg.LoadFeeStructure(config.FeeStructureFile)
	if err != nil {
		return nil, fmt.Errorf("cannot load fee structure: %w", err)
	}

	for _, c := range classes {
		class := domain.FeeClass{
			Course: strings.TrimSpace(c.Course),
			Year:   strings.TrimSpace(c.Year),
			Fees:   make(map[string]decimal.Decimal, len(c.Fees)),
		}

		for feeType, amount := range c.Fees {
			if !domain.ValidFeeType(feeType) {
				return nil, fmt.Errorf("fee structure %s %s: %w", class.Course, class.Year, domain.ErrInvalidFeeType)
			}

			a, err := moneypkg.Parse(amount)
			if err != nil {
				return nil, fmt.Errorf("fee structure %s %s %s: %w", class.Course, class.Year, feeType, err)
			}

			class.Fees[feeType] = a
		}

		result = append(result, class)
	}

	return result, nil
}

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// registerValidators adds the custom binding tags to gin's shared validator.
func registerValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		if err := v.RegisterValidation("money", moneypkg.ValidAmount); err != nil {
			validatorsErr = errors.New("cannot register money validator")
			return
		}

		if err := v.RegisterValidation("passcode", accountdelivery.ValidPasscode); err != nil {
			validatorsErr = errors.New("cannot register passcode validator")
		}
	})

	return validatorsErr
}

// New creates Server type with instantiated domains and routes. Accounts are
// loaded from store, which also receives every account change.
func New(store ledgerrepo.Persister, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	ctx := logger.WithContext(context.Background())

	s := &Server{
		Config: config,
		Ledger: ledgerrepo.NewRepoMem(store),
	}

	if err := s.Ledger.Load(ctx); err != nil {
		return nil, fmt.Errorf("cannot load accounts: %w", err)
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	paymentLimits, err := limits(config)
	if err != nil {
		return nil, err
	}

	fees, err := feeStructure(config)
	if err != nil {
		return nil, err
	}

	hasher := passpkg.NewBcrypt(config.BcryptCost)
	g := guard.New(hasher, s.limiter(config))

	letterhead := receipt.Letterhead{
		Name:         config.InstitutionName,
		Subtitle:     config.InstitutionSubtitle,
		Address:      config.InstitutionAddress,
		ContactEmail: config.ContactEmail,
		ContactPhone: config.ContactPhone,
		Website:      config.WebsiteURL,
	}

	ledgerService := ledgerservice.New(
		s.Ledger,
		g,
		receipt.NewGenerator(letterhead, config.Currency),
		newMailer(config),
		s.publisher(config, logger),
		portalrepo.NewReminders(ReminderHistorySize),
		portalrepo.NewFees(fees),
	)

	accountService, err := accountservice.New(s.Ledger, hasher, g, portalrepo.NewInbox())
	if err != nil {
		s.Close()
		return nil, errors.New("cannot initialize account service")
	}

	payGateways, err := gateways(config)
	if err != nil {
		s.Close()
		return nil, err
	}

	paymentService := paymentservice.New(ledgerService, s.Ledger, config.Currency, paymentLimits, payGateways...)

	if config.DemoMode && s.Ledger.Len() == 0 {
		if err := Seed(ctx, accountService, ledgerService); err != nil {
			s.Close()
			return nil, fmt.Errorf("cannot seed demo data: %w", err)
		}

		logger.Info().Int("accounts", s.Ledger.Len()).Msg("demo data seeded")
	}

	if err := registerValidators(); err != nil {
		s.Close()
		return nil, err
	}

	accountHandler := accountdelivery.NewHandler(accountService, tokenMaker, config.AccessTokenDuration)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)
	paymentHandler := paymentdelivery.NewHandler(paymentService)
	institutionHandler := institutiondelivery.NewHandler(ledgerService)

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(metrics.Middleware())

	engine.GET("/metrics", metrics.Handler())
	engine.POST("/accounts/login", accountHandler.Login)

	auth := middleware.AuthMiddleware(tokenMaker)

	authRoutes := engine.Group("/", auth)
	authRoutes.GET("/accounts/me", accountHandler.Me)
	authRoutes.POST("/accounts/password", accountHandler.ChangePassword)
	authRoutes.POST("/accounts/passcode", accountHandler.ChangePasscode)
	authRoutes.POST("/support", accountHandler.SendSupportMessage)

	adminRoutes := engine.Group("/admin", auth, middleware.RequireRole(domain.RoleAdmin))
	adminRoutes.POST("/accounts", accountHandler.Create)
	adminRoutes.GET("/support-messages", accountHandler.ListSupportMessages)

	studentRoutes := engine.Group("/", auth, middleware.RequireRole(domain.RoleStudent))
	studentRoutes.GET("/invoices", ledgerHandler.ListInvoices)
	studentRoutes.POST("/invoices/:id/settle", ledgerHandler.Settle)
	studentRoutes.GET("/transactions", ledgerHandler.ListTransactions)
	studentRoutes.POST("/payments", ledgerHandler.CreatePayment)
	studentRoutes.GET("/receipts/:id", ledgerHandler.GetReceipt)

	parentRoutes := engine.Group("/children", auth, middleware.RequireRole(domain.RoleParent))
	parentRoutes.GET("", ledgerHandler.ListChildren)
	parentRoutes.GET("/:username/invoices", ledgerHandler.ListChildInvoices)
	parentRoutes.GET("/:username/transactions", ledgerHandler.ListChildTransactions)

	payerRoutes := engine.Group("/gateways", auth, middleware.RequireRole(domain.RoleStudent, domain.RoleParent))
	payerRoutes.GET("", paymentHandler.ListGateways)
	payerRoutes.POST("/:gateway/orders", paymentHandler.CreateOrder)
	payerRoutes.POST("/:gateway/orders/:reference/confirm", paymentHandler.Confirm)

	institutionRoutes := engine.Group("/institution", auth, middleware.RequireRole(domain.RoleInstitution, domain.RoleAdmin))
	institutionRoutes.POST("/invoices", institutionHandler.IssueInvoice)
	institutionRoutes.GET("/students", institutionHandler.ListStudents)
	institutionRoutes.GET("/students/:username", institutionHandler.GetStudent)
	institutionRoutes.GET("/students/:username/statement", institutionHandler.ExportStatement)
	institutionRoutes.POST("/students/:username/reminders", institutionHandler.SendReminder)
	institutionRoutes.POST("/reminders", institutionHandler.SendBulkReminder)
	institutionRoutes.GET("/reminders", institutionHandler.ListReminders)
	institutionRoutes.GET("/fee-structure", institutionHandler.GetFeeStructure)
	institutionRoutes.PUT("/fee-structure", institutionHandler.UpdateFee)

	s.Engine = engine

	return s, nil
}
