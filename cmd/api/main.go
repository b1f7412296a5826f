package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	fundsadp "quickfactor-backend/internal/adapter/funds"
	httpadp "quickfactor-backend/internal/adapter/http"
	kycadp "quickfactor-backend/internal/adapter/kyc"
	"quickfactor-backend/internal/adapter/middleware"
	notifyadp "quickfactor-backend/internal/adapter/notify"
	"quickfactor-backend/internal/adapter/repository/mysql"
	"quickfactor-backend/internal/config"
	biddomain "quickfactor-backend/internal/domain/bid"
	escrowdomain "quickfactor-backend/internal/domain/escrow"
	"quickfactor-backend/internal/domain/event"
	feedomain "quickfactor-backend/internal/domain/fee"
	investmentdomain "quickfactor-backend/internal/domain/investment"
	invoicedomain "quickfactor-backend/internal/domain/invoice"
	"quickfactor-backend/internal/infrastructure/cache"
	"quickfactor-backend/internal/infrastructure/db"
	biduc "quickfactor-backend/internal/usecase/bid"
	defaultsuc "quickfactor-backend/internal/usecase/defaults"
	escrowuc "quickfactor-backend/internal/usecase/escrow"
	feeuc "quickfactor-backend/internal/usecase/fee"
	investmentuc "quickfactor-backend/internal/usecase/investment"
	invoiceuc "quickfactor-backend/internal/usecase/invoice"
	opsuc "quickfactor-backend/internal/usecase/ops"
	settlementuc "quickfactor-backend/internal/usecase/settlement"
	"quickfactor-backend/pkg/clock"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(
		&invoicedomain.Invoice{},
		&invoicedomain.PaymentRecord{},
		&biddomain.Bid{},
		&escrowdomain.Escrow{},
		&investmentdomain.Investment{},
		&investmentdomain.InsuranceCoverage{},
		&feedomain.PlatformFeeConfig{},
		&fundsadp.Account{},
		&fundsadp.Allowance{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	clk := clock.System{}
	var dispatcher event.Dispatcher = notifyadp.NewRedisDispatcher(rdb)
	if cfg.EventsSink == "log" {
		dispatcher = notifyadp.LogDispatcher{}
	}
	verifier := kycadp.NewRedisVerifier(rdb)
	ledger := fundsadp.NewLedger(gdb)

	invoiceRepo := mysql.NewInvoiceRepository(gdb)
	bidRepo := mysql.NewBidRepository(gdb)
	escrowRepo := mysql.NewEscrowRepository(gdb)
	investmentRepo := mysql.NewInvestmentRepository(gdb)
	feeRepo := mysql.NewFeeRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	invoiceUC := invoiceuc.NewUsecase(invoiceRepo, uow, verifier, clk, dispatcher, cfg.AdminID)
	bidUC := biduc.NewUsecase(bidRepo, uow, ledger, clk, dispatcher,
		cfg.MinBidAmount, time.Duration(cfg.BidExpirationHours)*time.Hour)
	settlementUC := settlementuc.NewUsecase(uow, ledger, clk, dispatcher)
	defaultsUC := defaultsuc.NewUsecase(invoiceRepo, uow, clk, dispatcher,
		time.Duration(cfg.GracePeriodDays)*24*time.Hour)
	escrowUC := escrowuc.NewUsecase(escrowRepo, uow, ledger, dispatcher, cfg.AdminID)
	feeUC := feeuc.NewUsecase(feeRepo, clk, cfg.AdminID)
	investmentUC := investmentuc.NewUsecase(investmentRepo, uow, ledger, dispatcher, cfg.DefaultCurrency)
	opsUC := opsuc.NewUsecase(ledger, verifier, cfg.AdminID, cfg.DefaultCurrency)

	h := httpadp.NewHandler()
	invoiceH := httpadp.NewInvoiceHandler(invoiceUC, cfg.DefaultCurrency)
	bidH := httpadp.NewBidHandler(bidUC)
	settlementH := httpadp.NewSettlementHandler(settlementUC)
	defaultH := httpadp.NewDefaultHandler(defaultsUC)
	escrowH := httpadp.NewEscrowHandler(escrowUC)
	feeH := httpadp.NewFeeHandler(feeUC)
	investmentH := httpadp.NewInvestmentHandler(investmentUC)
	opsH := httpadp.NewOpsHandler(opsUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	e.GET("/health", h.Health)

	e.POST("/invoices", invoiceH.UploadInvoice)
	e.GET("/invoices", invoiceH.ListInvoices)
	e.GET("/invoices/:invoice_id", invoiceH.GetInvoice)
	e.POST("/invoices/:invoice_id/verify", invoiceH.VerifyInvoice)
	e.GET("/invoices/:invoice_id/payments", invoiceH.ListPayments)
	e.POST("/invoices/:invoice_id/dispute", invoiceH.OpenDispute)
	e.POST("/invoices/:invoice_id/dispute/review", invoiceH.ReviewDispute)
	e.POST("/invoices/:invoice_id/dispute/resolve", invoiceH.ResolveDispute)

	e.POST("/invoices/:invoice_id/bids", bidH.PlaceBid)
	e.GET("/invoices/:invoice_id/bids", bidH.ListBids)
	e.GET("/invoices/:invoice_id/bids/best", bidH.BestBid)
	e.POST("/invoices/:invoice_id/bids/cleanup", bidH.CleanupExpiredBids)
	e.POST("/invoices/:invoice_id/bids/:bid_id/accept", bidH.AcceptBid)
	e.POST("/bids/:bid_id/withdraw", bidH.WithdrawBid)

	e.POST("/invoices/:invoice_id/payments", settlementH.RecordPayment)
	e.POST("/invoices/:invoice_id/settle", settlementH.Settle)

	e.POST("/invoices/:invoice_id/default", defaultH.MarkDefault)
	e.POST("/invoices/:invoice_id/expiration-check", defaultH.CheckExpiration)
	e.POST("/defaults/sweep", defaultH.SweepFunded)

	e.GET("/invoices/:invoice_id/escrow", escrowH.GetEscrow)
	e.POST("/invoices/:invoice_id/escrow/release", escrowH.ReleaseEscrow)
	e.POST("/invoices/:invoice_id/escrow/refund", escrowH.RefundEscrow)

	e.GET("/fees/platform", feeH.GetFeeConfig)
	e.PUT("/fees/platform", feeH.UpdateFeeConfig)
	e.GET("/fees/preview", feeH.PreviewSplit)

	e.POST("/investments/:investment_id/insurance", investmentH.AddInsurance)
	e.GET("/invoices/:invoice_id/investment", investmentH.GetByInvoice)

	e.POST("/accounts/:holder_id/deposit", opsH.Deposit)
	e.POST("/accounts/:holder_id/allowance", opsH.Approve)
	e.GET("/accounts/:holder_id/balance", opsH.Balance)
	e.POST("/businesses/:business_id/verify", opsH.VerifyBusiness)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
