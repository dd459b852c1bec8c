package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/print3d-api/internal/application/dto"
	"github.com/jhoicas/print3d-api/internal/application/session"
	"github.com/jhoicas/print3d-api/internal/application/usecase"
	"github.com/jhoicas/print3d-api/internal/domain"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
)

func seedCatalog(t *testing.T, sess *session.Session) {
	t.Helper()
	ctx := context.Background()
	_, err := usecase.NewCollectionUseCase(sess, usecase.Printers).Create(ctx, aliceID, entity.Printer{
		ID: "p1", Brand: "Bambu", Model: "A1", PowerWatts: d("200"), LifespanHours: d("1000"),
		PricePaid: d("5000"), FailureRate: d("10"),
	})
	require.NoError(t, err)
	_, err = usecase.NewCollectionUseCase(sess, usecase.Filaments).Create(ctx, aliceID, entity.Filament{
		ID: "f1", Type: "PLA", SpoolCost: d("100"), SpoolWeight: d("1000"), CurrentStock: d("1000"),
	})
	require.NoError(t, err)
	_, err = usecase.NewCollectionUseCase(sess, usecase.Accessories).Create(ctx, aliceID, entity.Accessory{
		ID: "a1", TotalQuantity: d("10"), TotalPrice: d("5"),
	})
	require.NoError(t, err)
}

func TestPrintUseCase_Register(t *testing.T) {
	sess, _ := loggedIn(t)
	seedCatalog(t, sess)
	uc := usecase.NewPrintUseCase(sess, usecase.Pricing{EnergyKWh: d("1"), MarginPercent: d("100")})
	when := "2026-05-01"

	rec, err := uc.Register(context.Background(), aliceID, dto.RegisterPrintRequest{
		Date: when, Client: "Maria", Product: "Vaso", PrinterID: "p1",
		Hours: d("10"), Quantity: 2,
		Filaments:   []dto.UsageRequest{{ID: "f1", Amount: d("150")}, {ID: "f1", Amount: d("50")}},
		Accessories: []dto.UsageRequest{{ID: "a1", Amount: d("4")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bambu A1", rec.Printer)
	assert.Equal(t, when, rec.Date)
	assert.True(t, rec.TotalWeight.Equal(d("200")))
	// material 20 + energía 2 + depreciación 50 = 72; fallas 7.2; extras 2
	assert.True(t, rec.TotalCost.Equal(d("81.2")), rec.TotalCost.String())
	assert.True(t, rec.UnitPrice.Equal(d("81.2")), rec.UnitPrice.String())

	cat := sess.Catalog()
	require.Len(t, cat.PrintHistory, 1)
	assert.True(t, cat.Filaments[0].CurrentStock.Equal(d("800")), "consumos repetidos se suman")
	assert.True(t, cat.Accessories[0].CurrentStock.Equal(d("6")))
}

func TestPrintUseCase_RegisterUnknownIDs(t *testing.T) {
	sess, _ := loggedIn(t)
	seedCatalog(t, sess)
	uc := usecase.NewPrintUseCase(sess, usecase.Pricing{})
	ctx := context.Background()

	_, err := uc.Register(ctx, aliceID, dto.RegisterPrintRequest{PrinterID: "nope", Quantity: 1,
		Filaments: []dto.UsageRequest{{ID: "f1", Amount: d("1")}}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Register(ctx, aliceID, dto.RegisterPrintRequest{PrinterID: "p1", Quantity: 1,
		Filaments: []dto.UsageRequest{{ID: "f9", Amount: d("1")}}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Register(ctx, aliceID, dto.RegisterPrintRequest{PrinterID: "p1", Quantity: 0,
		Filaments: []dto.UsageRequest{{ID: "f1", Amount: d("1")}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, sess.Catalog().PrintHistory)
	assert.True(t, sess.Catalog().Filaments[0].CurrentStock.Equal(d("1000")))
}

func TestPrintUseCase_HistoryNewestFirst(t *testing.T) {
	sess, _ := loggedIn(t)
	seedCatalog(t, sess)
	uc := usecase.NewPrintUseCase(sess, usecase.Pricing{})
	ctx := context.Background()
	for _, product := range []string{"a", "b", "c"} {
		_, err := uc.Register(ctx, aliceID, dto.RegisterPrintRequest{Product: product, PrinterID: "p1", Quantity: 1,
			Filaments: []dto.UsageRequest{{ID: "f1", Amount: d("1")}}})
		require.NoError(t, err)
	}

	page, err := uc.History(ctx, aliceID, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "c", page.Items[0].Product)
	assert.Equal(t, "b", page.Items[1].Product)
	assert.Equal(t, 3, page.Page.Total)
	assert.True(t, page.Page.HasMore)

	page, err = uc.History(ctx, aliceID, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a", page.Items[0].Product)
	assert.False(t, page.Page.HasMore)

	got, err := uc.Get(ctx, aliceID, page.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Product)
}

func TestPrintUseCase_ConsumeStock(t *testing.T) {
	sess, _ := loggedIn(t)
	seedCatalog(t, sess)
	uc := usecase.NewPrintUseCase(sess, usecase.Pricing{})

	cat, err := uc.ConsumeStock(context.Background(), aliceID, dto.StockConsumeRequest{
		Filaments:   []dto.UsageRequest{{ID: "f1", Amount: d("1200")}, {ID: "ghost", Amount: d("1")}},
		Accessories: []dto.UsageRequest{{ID: "a1", Amount: d("-5")}},
	})
	require.NoError(t, err)
	assert.True(t, cat.Filaments[0].CurrentStock.Equal(d("-200")), "el stock puede quedar negativo")
	assert.True(t, cat.Accessories[0].CurrentStock.Equal(d("15")), "cantidad negativa repone")
}
