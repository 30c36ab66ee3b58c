package voucher

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byID   map[string]*Voucher
	byCode map[string]*Voucher
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*Voucher{}, byCode: map[string]*Voucher{}}
}

func (f *fakeRepo) Create(ctx context.Context, v *Voucher) error {
	if _, exists := f.byCode[v.Code]; exists {
		return fmt.Errorf("voucher code %s already exists", v.Code)
	}
	f.byID[v.ID.String()] = v
	f.byCode[v.Code] = v
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Voucher, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("voucher %s not found", id)
	}
	return v, nil
}

func (f *fakeRepo) GetByCode(ctx context.Context, code string) (*Voucher, error) {
	v, ok := f.byCode[code]
	if !ok {
		return nil, fmt.Errorf("voucher code %s not found", code)
	}
	return v, nil
}

func (f *fakeRepo) List(ctx context.Context, activeOnly bool) ([]*Voucher, error) {
	var out []*Voucher
	for _, v := range f.byID {
		if activeOnly && !v.IsActive {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, v *Voucher) error {
	f.byID[v.ID.String()] = v
	f.byCode[v.Code] = v
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	v, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("voucher %s not found", id)
	}
	delete(f.byCode, v.Code)
	delete(f.byID, id)
	return nil
}

func (f *fakeRepo) IncrementUsage(ctx context.Context, id string) error {
	v, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("voucher %s not found", id)
	}
	v.UsedCount++
	return nil
}

var frozen = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *service {
	svc := NewService(repo).(*service)
	svc.now = func() time.Time { return frozen }
	return svc
}

func mustCreate(t *testing.T, svc Service, req VoucherRequest) *Voucher {
	t.Helper()
	v, err := svc.CreateVoucher(context.Background(), req)
	require.NoError(t, err)
	return v
}

func TestCreateVoucherNormalizesCode(t *testing.T) {
	svc := newTestService(newFakeRepo())
	v := mustCreate(t, svc, VoucherRequest{Code: "  tet2026 ", Type: TypePercent, Value: 10})
	assert.Equal(t, "TET2026", v.Code)
	assert.True(t, v.IsActive)
}

func TestCreateVoucherValidation(t *testing.T) {
	svc := newTestService(newFakeRepo())
	cases := []struct {
		name string
		req  VoucherRequest
	}{
		{"missing code", VoucherRequest{Type: TypeFixed, Value: 10}},
		{"bad type", VoucherRequest{Code: "X", Type: Type("BOGUS"), Value: 10}},
		{"zero value", VoucherRequest{Code: "X", Type: TypeFixed, Value: 0}},
		{"percent over 100", VoucherRequest{Code: "X", Type: TypePercent, Value: 150}},
		{"expires before starts", VoucherRequest{Code: "X", Type: TypeFixed, Value: 10,
			StartsAt: frozen, ExpiresAt: frozen.Add(-time.Hour)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateVoucher(context.Background(), tc.req)
			assert.Error(t, err)
		})
	}
}

func TestRedeemPercent(t *testing.T) {
	svc := newTestService(newFakeRepo())
	mustCreate(t, svc, VoucherRequest{Code: "SALE20", Type: TypePercent, Value: 20})

	discount, err := svc.Redeem(context.Background(), "sale20", 500)
	require.NoError(t, err)
	assert.Equal(t, 100.0, discount)
}

func TestRedeemFixedCappedAtSubtotal(t *testing.T) {
	svc := newTestService(newFakeRepo())
	mustCreate(t, svc, VoucherRequest{Code: "FLAT50", Type: TypeFixed, Value: 50})

	discount, err := svc.Redeem(context.Background(), "FLAT50", 30)
	require.NoError(t, err)
	assert.Equal(t, 30.0, discount)
}

func TestRedeemUnknownCode(t *testing.T) {
	svc := newTestService(newFakeRepo())
	_, err := svc.Redeem(context.Background(), "NOPE", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRedeemInactive(t *testing.T) {
	svc := newTestService(newFakeRepo())
	inactive := false
	mustCreate(t, svc, VoucherRequest{Code: "OFF", Type: TypeFixed, Value: 10, IsActive: &inactive})

	_, err := svc.Redeem(context.Background(), "OFF", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not active")
}

func TestRedeemOutsideValidityWindow(t *testing.T) {
	svc := newTestService(newFakeRepo())
	mustCreate(t, svc, VoucherRequest{Code: "FUTURE", Type: TypeFixed, Value: 10,
		StartsAt: frozen.Add(time.Hour), ExpiresAt: frozen.Add(48 * time.Hour)})
	mustCreate(t, svc, VoucherRequest{Code: "PAST", Type: TypeFixed, Value: 10,
		StartsAt: frozen.Add(-48 * time.Hour), ExpiresAt: frozen.Add(-time.Hour)})

	_, err := svc.Redeem(context.Background(), "FUTURE", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid yet")

	_, err = svc.Redeem(context.Background(), "PAST", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestRedeemMinOrder(t *testing.T) {
	svc := newTestService(newFakeRepo())
	mustCreate(t, svc, VoucherRequest{Code: "BIG", Type: TypeFixed, Value: 10, MinOrder: 200})

	_, err := svc.Redeem(context.Background(), "BIG", 150)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minimum order")

	discount, err := svc.Redeem(context.Background(), "BIG", 200)
	require.NoError(t, err)
	assert.Equal(t, 10.0, discount)
}

func TestRedeemUsageLimit(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	v := mustCreate(t, svc, VoucherRequest{Code: "ONCE", Type: TypeFixed, Value: 10, UsageLimit: 1})

	_, err := svc.Redeem(context.Background(), "ONCE", 100)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.byID[v.ID.String()].UsedCount)

	_, err = svc.Redeem(context.Background(), "ONCE", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage limit")
}

func TestRedeemUnlimitedUsage(t *testing.T) {
	svc := newTestService(newFakeRepo())
	mustCreate(t, svc, VoucherRequest{Code: "FOREVER", Type: TypeFixed, Value: 5, UsageLimit: 0})

	for i := 0; i < 3; i++ {
		_, err := svc.Redeem(context.Background(), "FOREVER", 100)
		require.NoError(t, err)
	}
}
