package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-ems/internal/employee"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/payment"
	payrollerrors "go-ems/internal/payroll/errors"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// approveLockTTL membatasi umur lock Redis per record; kalau proses mati di
// tengah capture, lock lepas sendiri dan operator bisa approve ulang.
const approveLockTTL = 2 * time.Minute

var canonicalMonths = map[string]bool{
	"January": true, "February": true, "March": true, "April": true,
	"May": true, "June": true, "July": true, "August": true,
	"September": true, "October": true, "November": true, "December": true,
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor contextutil.Actor, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, filter GetPayrollsFilterRequest) ([]PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	Approve(ctx context.Context, actor contextutil.Actor, id string, req ApprovePayrollRequest) (PayrollResponse, error)
	Reject(ctx context.Context, actor contextutil.Actor, id string) (PayrollResponse, error)
	History(ctx context.Context, actor contextutil.Actor, employeeEmail string, page, limit int) ([]PayrollResponse, response.PaginationMeta, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	outbox       kafka.OutboxRepository
	gateway      payment.Gateway
	rdb          *redis.Client
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	outbox kafka.OutboxRepository,
	gateway payment.Gateway,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		outbox:       outbox,
		gateway:      gateway,
		rdb:          rdb,
		logger:       l,
	}
}

// Create membuat satu record PENDING untuk satu karyawan/periode.
// Tidak ada pembayaran yang diinisiasi di tahap ini.
func (s *service) Create(ctx context.Context, actor contextutil.Actor, req CreatePayrollRequest) (PayrollResponse, error) {
	if err := guardRole(actor, rbac.RoleHR, rbac.RoleAdmin); err != nil {
		return PayrollResponse{}, err
	}

	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create payroll requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("month", req.Month),
		zap.Int("year", req.Year),
	)

	if !canonicalMonths[req.Month] {
		return PayrollResponse{}, payrollerrors.ErrInvalidMonth
	}
	if req.Year < 1000 || req.Year > 9999 || req.Year > time.Now().Year() {
		return PayrollResponse{}, payrollerrors.ErrInvalidYear
	}
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	requestedBy, err := uuid.Parse(actor.UserID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrNotAuthorized
	}

	empl, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
		}
		return PayrollResponse{}, err
	}
	if !empl.IsVerified || empl.EmploymentStatus == employee.EmploymentTerminated {
		s.logger.Warn("create payroll ineligible employee",
			zap.String("employee_id", req.EmployeeID),
			zap.Bool("is_verified", empl.IsVerified),
			zap.String("employment_status", empl.EmploymentStatus),
		)
		return PayrollResponse{}, payrollerrors.ErrEmployeeNotEligible
	}
	if empl.Salary <= 0 {
		return PayrollResponse{}, payrollerrors.ErrInvalidAmount
	}

	// Pre-check duplikat. Unique index (employee_email, month, year) tetap
	// jadi penjaga terakhir terhadap race dua request bersamaan.
	exists, err := s.repo.ExistsForPeriod(ctx, empl.Email, req.Month, req.Year)
	if err != nil {
		return PayrollResponse{}, err
	}
	if exists {
		return PayrollResponse{}, payrollerrors.ErrDuplicatePeriod
	}

	record := &PayrollRecord{
		ID:            uuid.New(),
		EmployeeID:    empl.ID,
		EmployeeName:  empl.FullName,
		EmployeeEmail: empl.Email,
		Amount:        empl.Salary,
		Month:         req.Month,
		Year:          req.Year,
		Status:        StatusPending,
		RequestedBy:   requestedBy,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, record); err != nil {
		s.logger.Error("create payroll persist failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueEvent(ctx, tx, record, "payroll_requested", events.PayrollRequestedTopic, rid); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create payroll success",
		zap.String("payroll_id", record.ID.String()),
		zap.String("employee_email", record.EmployeeEmail),
		zap.String("month", record.Month),
		zap.Int("year", record.Year),
	)

	return mapToResponse(*record), nil
}

func (s *service) GetAll(ctx context.Context, filter GetPayrollsFilterRequest) ([]PayrollResponse, error) {
	records, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(records), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*record), nil
}

// Approve mentransisikan record PENDING ke APPROVED. Uang hanya berpindah
// jika processor mengkonfirmasi sukses; record tidak pernah ditandai APPROVED
// tanpa sinyal sukses eksplisit. Selama capture berjalan record secara
// logis berada di state "capturing" yang tidak dipersist; eksklusivitasnya
// dijaga lock Redis per record dan conditional update di store.
func (s *service) Approve(ctx context.Context, actor contextutil.Actor, id string, req ApprovePayrollRequest) (PayrollResponse, error) {
	if err := guardRole(actor, rbac.RoleAdmin); err != nil {
		return PayrollResponse{}, err
	}

	rid := contextutil.GetRequestID(ctx)
	log := s.logger.With(
		zap.String("request_id", rid),
		zap.String("payroll_id", id),
		zap.String("actor_id", actor.UserID),
	)
	log.Debug("approve payroll requested")

	// pending -> capturing: klaim record untuk request ini.
	unlock, err := s.acquireApproveLock(ctx, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer unlock()

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if record.Status != StatusPending {
		return PayrollResponse{}, payrollerrors.ErrInvalidTransition
	}

	intent, err := s.gateway.CreateIntent(ctx, payment.CreateIntentParams{
		Amount:     record.Amount,
		PayrollID:  record.ID.String(),
		EmployeeID: record.EmployeeID.String(),
	})
	if err != nil {
		log.Error("create payment intent failed", zap.Error(err))
		return PayrollResponse{}, payrollerrors.ErrPaymentFailed.WithDetail(err.Error())
	}

	result, err := s.gateway.Confirm(ctx, intent.ID, req.PaymentMethodID)
	if err != nil {
		log.Error("confirm payment failed", zap.Error(err))
		return PayrollResponse{}, payrollerrors.ErrPaymentFailed.WithDetail(err.Error())
	}
	if !result.Succeeded {
		// capturing -> failed: status tersimpan tetap PENDING, operator
		// boleh approve ulang.
		log.Warn("payment capture not succeeded",
			zap.String("processor_status", result.Status),
			zap.String("processor_message", result.Message),
		)
		return PayrollResponse{}, payrollerrors.ErrPaymentFailed.WithDetail(result.Message)
	}

	// capturing -> approved: conditional update adalah enforcement point.
	paymentDate := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	updated, err := qtx.ApproveIfPending(ctx, id, paymentDate, result.TransactionID)
	if err != nil {
		return PayrollResponse{}, err
	}
	if !updated {
		// Capture sudah sukses tapi record berubah di bawah kita; jangan
		// diam-diam: transaksinya butuh rekonsiliasi manual.
		log.Error("approved capture raced with another transition",
			zap.String("transaction_id", result.TransactionID),
		)
		return PayrollResponse{}, payrollerrors.ErrAlreadyProcessed
	}

	record.Status = StatusApproved
	record.PaymentDate = &paymentDate
	record.TransactionID = &result.TransactionID

	if err := s.enqueueEvent(ctx, tx, record, "payroll_approved", events.PayrollApprovedTopic, rid); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	log.Info("approve payroll success",
		zap.String("transaction_id", result.TransactionID),
	)

	return mapToResponse(*record), nil
}

// Reject mentransisikan record PENDING ke REJECTED. Terminal; tidak ada field
// lain yang diubah.
func (s *service) Reject(ctx context.Context, actor contextutil.Actor, id string) (PayrollResponse, error) {
	if err := guardRole(actor, rbac.RoleAdmin); err != nil {
		return PayrollResponse{}, err
	}

	rid := contextutil.GetRequestID(ctx)
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	updated, err := qtx.RejectIfPending(ctx, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	if !updated {
		return PayrollResponse{}, payrollerrors.ErrInvalidTransition
	}

	record.Status = StatusRejected
	if err := s.enqueueEvent(ctx, tx, record, "payroll_rejected", events.PayrollRejectedTopic, rid); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("reject payroll success",
		zap.String("payroll_id", id),
		zap.String("actor_id", actor.UserID),
	)

	return mapToResponse(*record), nil
}

// History mengembalikan riwayat payroll milik satu karyawan, terbaru dulu.
// Role employee hanya boleh membaca riwayatnya sendiri.
func (s *service) History(ctx context.Context, actor contextutil.Actor, employeeEmail string, page, limit int) ([]PayrollResponse, response.PaginationMeta, error) {
	if actor.Role != rbac.RoleAdmin && actor.Role != rbac.RoleHR {
		if !strings.EqualFold(actor.Email, employeeEmail) {
			return nil, response.PaginationMeta{}, payrollerrors.ErrForbiddenHistory
		}
	}

	if page < 1 || limit < 1 {
		return nil, response.PaginationMeta{}, payrollerrors.ErrInvalidPage
	}

	records, total, err := s.repo.FindByEmailPaginated(ctx, employeeEmail, page, limit)
	if err != nil {
		return nil, response.PaginationMeta{}, err
	}

	meta := response.NewPaginationMeta(total, page, limit)
	return mapToListResponse(records), meta, nil
}

// acquireApproveLock menahan approve ganda pada record yang sama selama
// capture berjalan. Tanpa Redis (mis. di unit test) pengaman jatuh ke
// conditional update saja.
func (s *service) acquireApproveLock(ctx context.Context, id string) (func(), error) {
	if s.rdb == nil {
		return func() {}, nil
	}

	lockKey := "payroll:approve:" + id
	ok, err := s.rdb.SetNX(ctx, lockKey, "capturing", approveLockTTL).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, payrollerrors.ErrAlreadyProcessing
	}

	return func() {
		_ = s.rdb.Del(context.WithoutCancel(ctx), lockKey).Err()
	}, nil
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, record *PayrollRecord, eventType, topic, requestID string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.PayrollStatusEvent{
		EventType:     eventType,
		RequestID:     requestID,
		PayrollID:     record.ID.String(),
		EmployeeID:    record.EmployeeID.String(),
		EmployeeName:  record.EmployeeName,
		EmployeeEmail: record.EmployeeEmail,
		Amount:        record.Amount,
		Month:         record.Month,
		Year:          record.Year,
		Status:        record.Status,
		OccurredAt:    time.Now().UTC(),
	}
	if record.TransactionID != nil {
		event.TransactionID = *record.TransactionID
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: "payroll",
		AggregateID:   record.ID.String(),
		EventType:     eventType,
		Topic:         topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("payroll outbox persist failed",
			zap.String("payroll_id", record.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func guardRole(actor contextutil.Actor, allowed ...string) error {
	for _, role := range allowed {
		if actor.Role == role {
			return nil
		}
	}
	return payrollerrors.ErrNotAuthorized
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_payroll_period" {
			return payrollerrors.ErrDuplicatePeriod
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_payroll_period") {
		return payrollerrors.ErrDuplicatePeriod
	}

	return err
}

func mapToResponse(record PayrollRecord) PayrollResponse {
	resp := PayrollResponse{
		ID:            record.ID.String(),
		EmployeeID:    record.EmployeeID.String(),
		EmployeeName:  record.EmployeeName,
		EmployeeEmail: record.EmployeeEmail,
		Amount:        record.Amount,
		Month:         record.Month,
		Year:          record.Year,
		Status:        record.Status,
		RequestedBy:   record.RequestedBy.String(),
		CreatedAt:     record.CreatedAt.Format(time.RFC3339),
	}

	if record.PaymentDate != nil {
		v := record.PaymentDate.Format(time.RFC3339)
		resp.PaymentDate = &v
	}
	if record.TransactionID != nil {
		v := *record.TransactionID
		resp.TransactionID = &v
	}

	return resp
}

func mapToListResponse(records []PayrollRecord) []PayrollResponse {
	resp := make([]PayrollResponse, len(records))
	for i, record := range records {
		resp[i] = mapToResponse(record)
	}
	return resp
}
