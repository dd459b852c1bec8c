package usecase

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/print3d-api/internal/application/dto"
	"github.com/jhoicas/print3d-api/internal/application/persistence"
	"github.com/jhoicas/print3d-api/internal/application/session"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
	"github.com/jhoicas/print3d-api/internal/domain/repository"
	"github.com/jhoicas/print3d-api/pkg/logger"
)

// PrintSummarizer medio capaz de agregar el historial de un snapshot sin decodificarlo
// (postgres.KVRepo lo hace en SQL).
type PrintSummarizer interface {
	SummarizePrints(ctx context.Context, key string) (count int, revenue, profit decimal.Decimal, err error)
}

// ReportUseCase resumen de producción por usuario, leído directamente del medio persistido.
type ReportUseCase struct {
	sess      *session.Session
	kv        repository.KeyValueStore
	namespace string
	log       *logger.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(sess *session.Session, kv repository.KeyValueStore, namespace string, log *logger.Logger) *ReportUseCase {
	return &ReportUseCase{sess: sess, kv: kv, namespace: namespace, log: log.Component("report")}
}

// Summaries un resumen por usuario del directorio, ordenado por clave.
// Un snapshot ilegible cuenta como vacío.
func (uc *ReportUseCase) Summaries(ctx context.Context) (*dto.SummaryListResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	users := uc.sess.Auth().Users
	keys := make([]string, 0, len(users))
	for k := range users {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := &dto.SummaryListResponse{Items: make([]dto.UserSummaryResponse, 0, len(keys))}
	for _, k := range keys {
		s, err := uc.summarize(ctx, persistence.DataKey(uc.namespace, k))
		if err != nil {
			return nil, err
		}
		s.Username = users[k].User.Username
		out.Items = append(out.Items, s)
	}
	return out, nil
}

func (uc *ReportUseCase) summarize(ctx context.Context, key string) (dto.UserSummaryResponse, error) {
	empty := dto.UserSummaryResponse{Revenue: decimal.Zero, Profit: decimal.Zero}
	if s, ok := uc.kv.(PrintSummarizer); ok {
		count, revenue, profit, err := s.SummarizePrints(ctx, key)
		if err == nil {
			return dto.UserSummaryResponse{Prints: count, Revenue: revenue, Profit: profit}, nil
		}
		uc.log.Warn().Err(err).Str("key", key).Msg("resumen en el medio falló, se decodifica el snapshot")
	}

	raw, found, err := uc.kv.Get(ctx, key)
	if err != nil {
		return empty, err
	}
	if !found {
		return empty, nil
	}
	data, ok, err := persistence.DecodeCatalog(raw)
	if err != nil || !ok {
		return empty, nil
	}
	return summarizeHistory(data.PrintHistory), nil
}

func summarizeHistory(history []entity.PrintRecord) dto.UserSummaryResponse {
	s := dto.UserSummaryResponse{Prints: len(history), Revenue: decimal.Zero, Profit: decimal.Zero}
	for _, r := range history {
		s.Revenue = s.Revenue.Add(r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity))))
		s.Profit = s.Profit.Add(r.TotalProfit)
	}
	return s
}
