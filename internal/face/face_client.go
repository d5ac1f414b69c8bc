package face

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	faceerrors "github.com/RNiyam/attendance-system/internal/face/errors"
	"github.com/RNiyam/attendance-system/internal/shared/apperror"
	"github.com/RNiyam/attendance-system/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=face_client.go -destination=mock/face_client_mock.go -package=mock
type Client interface {
	Verify(ctx context.Context, storedEmbedding []float64, image string) (Result, error)
	ExtractEmbedding(ctx context.Context, image string) ([]float64, error)
	Health(ctx context.Context) error
}

type FailureKind string

const (
	KindUnreachable FailureKind = "unreachable"
	KindRemote      FailureKind = "remote_error"
	KindMalformed   FailureKind = "malformed_response"
)

// ServiceError carries the reason a call to the face service failed. It is
// kept for logs; callers branch on the faceerrors sentinels instead.
type ServiceError struct {
	Op     string
	Kind   FailureKind
	Status int
	Err    error
}

func (e *ServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("face service %s: %s (status %d): %v", e.Op, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("face service %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

type Options struct {
	BaseURL string
	Timeout time.Duration
	// DefaultThreshold is echoed when the service omits its own threshold.
	DefaultThreshold float64
}

type httpClient struct {
	baseURL          string
	http             *http.Client
	defaultThreshold float64
	logger           *zap.Logger
}

func NewClient(opts Options, logger ...*zap.Logger) Client {
	l := zap.L().Named("face.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("face.client")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &httpClient{
		baseURL:          strings.TrimRight(opts.BaseURL, "/"),
		defaultThreshold: opts.DefaultThreshold,
		logger:           l,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:          20,
				IdleConnTimeout:       90 * time.Second,
				ResponseHeaderTimeout: timeout,
			},
		},
	}
}

func (c *httpClient) Verify(ctx context.Context, storedEmbedding []float64, image string) (Result, error) {
	if len(storedEmbedding) == 0 {
		return Result{}, faceerrors.ErrEmptyEmbedding
	}
	if err := ValidateImage(image); err != nil {
		return Result{}, err
	}

	var raw verifyResponse
	status, err := c.postJSON(ctx, "/verify-face", verifyRequest{
		StoredEmbedding: storedEmbedding,
		Image:           image,
	}, &raw)
	if err != nil {
		return Result{}, c.fail(ctx, err)
	}
	if raw.Error != "" {
		return Result{}, c.fail(ctx, &ServiceError{Op: "verify", Kind: KindRemote, Status: status, Err: errors.New(raw.Error)})
	}

	return c.normalize(raw), nil
}

func (c *httpClient) ExtractEmbedding(ctx context.Context, image string) ([]float64, error) {
	if err := ValidateImage(image); err != nil {
		return nil, err
	}
	if err := c.Health(ctx); err != nil {
		return nil, err
	}

	var raw registerResponse
	status, err := c.postJSON(ctx, "/register-face", registerRequest{Image: stripDataURL(image)}, &raw)
	if err != nil {
		var svcErr *ServiceError
		if errors.As(err, &svcErr) && svcErr.Kind == KindRemote {
			if detectionErr := classifyDetection(svcErr.Err.Error()); detectionErr != nil {
				return nil, apperror.WrapAs(svcErr, detectionErr)
			}
		}
		return nil, c.fail(ctx, err)
	}
	if raw.Error != "" {
		if detectionErr := classifyDetection(raw.Error); detectionErr != nil {
			return nil, detectionErr
		}
		return nil, c.fail(ctx, &ServiceError{Op: "register", Kind: KindRemote, Status: status, Err: errors.New(raw.Error)})
	}
	if len(raw.Embedding) == 0 {
		return nil, faceerrors.ErrNoFaceDetected
	}

	return raw.Embedding, nil
}

func (c *httpClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return c.fail(ctx, &ServiceError{Op: "health", Kind: KindUnreachable, Err: err})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(ctx, &ServiceError{Op: "health", Kind: KindUnreachable, Err: err})
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(ctx, &ServiceError{Op: "health", Kind: KindUnreachable, Status: resp.StatusCode, Err: errors.New("unhealthy")})
	}
	return nil
}

func (c *httpClient) postJSON(ctx context.Context, path string, body any, out any) (int, error) {
	op := strings.TrimPrefix(path, "/")

	payload, err := json.Marshal(body)
	if err != nil {
		return 0, &ServiceError{Op: op, Kind: KindMalformed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, &ServiceError{Op: op, Kind: KindUnreachable, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &ServiceError{Op: op, Kind: KindUnreachable, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &ServiceError{Op: op, Kind: KindUnreachable, Status: resp.StatusCode, Err: err}
	}

	// A missing route means the service is not the one we expect to talk to.
	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, &ServiceError{Op: op, Kind: KindUnreachable, Status: resp.StatusCode, Err: errors.New("endpoint not found")}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var remote errorResponse
		if json.Unmarshal(b, &remote) == nil && remote.Error != "" {
			return resp.StatusCode, &ServiceError{Op: op, Kind: KindRemote, Status: resp.StatusCode, Err: errors.New(remote.Error)}
		}
		return resp.StatusCode, &ServiceError{Op: op, Kind: KindRemote, Status: resp.StatusCode, Err: fmt.Errorf("body=%s", truncate(b, 200))}
	}

	if err := json.Unmarshal(b, out); err != nil {
		return resp.StatusCode, &ServiceError{Op: op, Kind: KindMalformed, Status: resp.StatusCode, Err: err}
	}
	return resp.StatusCode, nil
}

// fail logs the failure detail and maps it onto the caller-facing taxonomy.
func (c *httpClient) fail(ctx context.Context, err error) error {
	log := contextutil.GetLogger(ctx, c.logger)

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		log.Error("face service call failed", zap.Error(err))
		return apperror.WrapAs(err, faceerrors.ErrVerificationFailed)
	}

	log.Warn("face service call failed",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("op", svcErr.Op),
		zap.String("kind", string(svcErr.Kind)),
		zap.Int("status", svcErr.Status),
		zap.Error(svcErr.Err),
	)

	if svcErr.Kind == KindUnreachable {
		return apperror.WrapAs(svcErr, faceerrors.ErrVerificationUnavailable)
	}
	return apperror.WrapAs(svcErr, faceerrors.ErrVerificationFailed)
}

func (c *httpClient) normalize(raw verifyResponse) Result {
	res := Result{
		Match:      false,
		Confidence: defaultConfidence,
		Distance:   defaultDistance,
		Threshold:  c.defaultThreshold,
	}

	if raw.Match != nil {
		res.Match = *raw.Match
	}
	if raw.Confidence != nil && isFinite(*raw.Confidence) && *raw.Confidence >= 0 {
		res.Confidence = math.Min(*raw.Confidence, 1)
	}
	if raw.Distance != nil && isFinite(*raw.Distance) && *raw.Distance >= 0 {
		res.Distance = *raw.Distance
	}
	if raw.Threshold != nil && isFinite(*raw.Threshold) {
		res.Threshold = *raw.Threshold
	}
	return res
}

func classifyDetection(msg string) *apperror.AppError {
	m := strings.ToLower(msg)
	switch {
	case strings.Contains(m, "multiple faces") && !strings.Contains(m, "not detected"):
		return faceerrors.ErrMultipleFaces
	case strings.Contains(m, "no face"), strings.Contains(m, "face not detected"), strings.Contains(m, "multiple faces"):
		return faceerrors.ErrNoFaceDetected
	default:
		return nil
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
