package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	employeeerrors "github.com/RNiyam/attendance-system/internal/employee/errors"
	"github.com/RNiyam/attendance-system/internal/events"
	"github.com/RNiyam/attendance-system/internal/face"
	"github.com/RNiyam/attendance-system/internal/messaging/kafka"
	"github.com/RNiyam/attendance-system/internal/profile"
	"github.com/RNiyam/attendance-system/internal/shared/contextutil"
	"github.com/RNiyam/attendance-system/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const EmployeeListCacheKey = "employees:list"

type Service interface {
	Register(ctx context.Context, req RegisterEmployeeRequest) (EmployeeResponse, error)
	ReplaceFace(ctx context.Context, code string, req ReplaceFaceRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByCode(ctx context.Context, code string) (EmployeeResponse, error)
	Onboard(ctx context.Context, userID string, req OnboardRequest) (EmployeeResponse, error)
	OnboardingStatus(ctx context.Context, userID string) (OnboardingStatusResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	counter  counter.Repository
	face     face.Client
	outbox   kafka.OutboxRepository
	profiles profile.Repository
	rdb      *redis.Client
	sf       *singleflight.Group
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	faceClient face.Client,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, counter, faceClient, nil, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	faceClient face.Client,
	outboxRepo kafka.OutboxRepository,
	profiles profile.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		counter:  counter,
		face:     faceClient,
		outbox:   outboxRepo,
		profiles: profiles,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) Register(ctx context.Context, req RegisterEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	code := strings.TrimSpace(req.EmpCode)
	s.logger.Debug("register employee requested",
		zap.String("request_id", rid),
		zap.String("emp_code", code),
	)

	if code == "" {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeCode
	}
	if err := face.ValidateImage(req.Image); err != nil {
		return EmployeeResponse{}, err
	}

	// Checked before extraction so a duplicate never costs a face service call.
	exists, err := s.repo.ExistsByCode(ctx, code)
	if err != nil {
		s.logger.Error("register employee lookup failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if exists {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeCodeExists
	}

	embedding, err := s.face.ExtractEmbedding(ctx, req.Image)
	if err != nil {
		s.logger.Warn("register employee face extraction failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	encoded, err := encodeEmbedding(embedding)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	empl := &Employee{
		ID:            uuid.New(),
		Code:          code,
		Name:          strings.TrimSpace(req.Name),
		FaceEmbedding: encoded,
		CreatedAt:     s.now(),
	}
	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("register employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.queueEvent(ctx, tx, events.EventEmployeeRegistered, empl); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("register employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateList(ctx)
	s.logger.Info("register employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("emp_code", code),
		zap.Int("dimensions", len(embedding)),
	)

	resp := MapToResponse(*empl)
	resp.Dimensions = len(embedding)
	return resp, nil
}

func (s *service) ReplaceFace(ctx context.Context, code string, req ReplaceFaceRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	code = strings.TrimSpace(code)
	s.logger.Debug("replace face requested", zap.String("request_id", rid), zap.String("emp_code", code))

	if err := face.ValidateImage(req.Image); err != nil {
		return EmployeeResponse{}, err
	}

	rows, err := s.repo.FindAllByCode(ctx, code, 2)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	switch {
	case len(rows) == 0:
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	case len(rows) > 1:
		s.logger.Error("employee code is not unique", zap.String("emp_code", code), zap.Int("rows", len(rows)))
		return EmployeeResponse{}, employeeerrors.ErrIntegrityViolation
	}
	empl := rows[0]

	embedding, err := s.face.ExtractEmbedding(ctx, req.Image)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if err := s.replaceEmbedding(ctx, &empl, "", embedding); err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("replace face success", zap.String("request_id", rid), zap.String("employee_id", empl.ID.String()))
	resp := MapToResponse(empl)
	resp.Dimensions = len(embedding)
	return resp, nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeListCacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeListCacheKey, func() (any, error) {
		rows, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		resp := mapToListResponse(rows)

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeListCacheKey, data, 5*time.Minute).Err(); err != nil {
					s.logger.Warn("cache employee list failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByCode(ctx context.Context, code string) (EmployeeResponse, error) {
	rows, err := s.repo.FindAllByCode(ctx, strings.TrimSpace(code), 2)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	switch len(rows) {
	case 0:
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	case 1:
		return MapToResponse(rows[0]), nil
	default:
		return EmployeeResponse{}, employeeerrors.ErrIntegrityViolation
	}
}

// Onboard links the caller's account to an employee record and stores their
// face and any profile details. Callers without a record get a generated
// EMP0001 style code.
func (s *service) Onboard(ctx context.Context, userID string, req OnboardRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	uid, err := uuid.Parse(userID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidUserID
	}
	if err := face.ValidateImage(req.Image); err != nil {
		return EmployeeResponse{}, err
	}
	if _, err := profile.ApplyUpdate(&profile.Profile{}, req.UpdateProfileRequest, s.now()); err != nil {
		return EmployeeResponse{}, err
	}

	embedding, err := s.face.ExtractEmbedding(ctx, req.Image)
	if err != nil {
		s.logger.Warn("onboarding face extraction failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	existing, err := s.repo.FindByUserID(ctx, uid)
	if err != nil && !isNotFound(err) {
		return EmployeeResponse{}, err
	}
	if existing != nil {
		if err := s.replaceEmbedding(ctx, existing, strings.TrimSpace(req.Name), embedding); err != nil {
			return EmployeeResponse{}, err
		}
		if err := s.saveProfile(ctx, nil, uid, req.UpdateProfileRequest); err != nil {
			return EmployeeResponse{}, err
		}
		s.logger.Info("onboarding refreshed existing employee", zap.String("request_id", rid), zap.String("employee_id", existing.ID.String()))
		return MapToResponse(*existing), nil
	}

	encoded, err := encodeEmbedding(embedding)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	next, err := s.counter.WithTx(tx).GetNextValue(ctx, counter.EmployeeCode)
	if err != nil {
		s.logger.Error("onboarding generate code failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:            uuid.New(),
		Code:          fmt.Sprintf("EMP%04d", next),
		Name:          strings.TrimSpace(req.Name),
		UserID:        &uid,
		FaceEmbedding: encoded,
		CreatedAt:     s.now(),
	}
	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("onboarding persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := s.saveProfile(ctx, tx, uid, req.UpdateProfileRequest); err != nil {
		return EmployeeResponse{}, err
	}
	if err := s.queueEvent(ctx, tx, events.EventEmployeeRegistered, empl); err != nil {
		return EmployeeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateList(ctx)
	s.logger.Info("onboarding complete",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("emp_code", empl.Code),
	)
	return MapToResponse(*empl), nil
}

func (s *service) OnboardingStatus(ctx context.Context, userID string) (OnboardingStatusResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return OnboardingStatusResponse{}, employeeerrors.ErrInvalidUserID
	}

	empl, err := s.repo.FindByUserID(ctx, uid)
	if err != nil {
		if isNotFound(err) {
			return OnboardingStatusResponse{Completed: false}, nil
		}
		return OnboardingStatusResponse{}, err
	}

	_, embErr := ParseEmbedding(empl.FaceEmbedding)
	return OnboardingStatusResponse{
		Completed: embErr == nil,
		EmpCode:   empl.Code,
		Name:      empl.Name,
	}, nil
}

// saveProfile writes the onboarding profile fields, inside tx when given.
func (s *service) saveProfile(ctx context.Context, tx *sql.Tx, userID uuid.UUID, req profile.UpdateProfileRequest) error {
	if s.profiles == nil || req.IsEmpty() {
		return nil
	}
	repo := s.profiles
	if tx != nil {
		repo = repo.WithTx(tx)
	}
	if _, err := profile.Save(ctx, repo, userID, req, s.now()); err != nil {
		s.logger.Warn("onboarding save profile failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// replaceEmbedding swaps the whole embedding (and optionally the name) in one
// statement.
func (s *service) replaceEmbedding(ctx context.Context, empl *Employee, name string, embedding []float64) error {
	encoded, err := encodeEmbedding(embedding)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).UpdateProfile(ctx, empl.ID, name, encoded); err != nil {
		s.logger.Error("update employee face failed", zap.String("employee_id", empl.ID.String()), zap.Error(err))
		return mapRepositoryError(err)
	}
	empl.FaceEmbedding = encoded
	if name != "" {
		empl.Name = name
	}

	if err := s.queueEvent(ctx, tx, events.EventEmployeeFaceUpdated, empl); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateList(ctx)
	return nil
}

func (s *service) queueEvent(ctx context.Context, tx *sql.Tx, eventType string, empl *Employee) error {
	if s.outbox == nil {
		return nil
	}
	rid := contextutil.GetRequestID(ctx)

	event := events.EmployeeRegisteredEvent{
		EventType:  eventType,
		RequestID:  rid,
		EmployeeID: empl.ID.String(),
		EmpCode:    empl.Code,
		OccurredAt: s.now().UTC(),
	}
	if empl.UserID != nil {
		event.UserID = empl.UserID.String()
	}

	outboxEvent, err := kafka.NewOutboxEvent(rid, "employee", empl.ID.String(), eventType, events.EmployeeLifecycleTopic, event)
	if err != nil {
		s.logger.Error("marshal employee event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("employee outbox persist failed",
			zap.String("request_id", rid),
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) invalidateList(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeListCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee list cache",
			zap.Error(err),
			zap.String("key", EmployeeListCacheKey),
		)
	}
}

func MapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:        e.ID.String(),
		EmpCode:   e.Code,
		Name:      e.Name,
		HasFace:   e.HasFace || len(e.FaceEmbedding) > 0,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
	if e.UserID != nil {
		resp.UserID = e.UserID.String()
	}
	return resp
}

func mapToListResponse(rows []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		res[i] = MapToResponse(e)
	}
	return res
}
