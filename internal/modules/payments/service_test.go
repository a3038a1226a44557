package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakevn/Gateways/internal/modules/gateways"
	"github.com/sakevn/Gateways/internal/modules/zalopay"
)

type fakeResolver struct {
	creds gateways.Credentials
	err   error
}

func (f fakeResolver) Resolve(ctx context.Context, name string) (gateways.Credentials, error) {
	return f.creds, f.err
}

type fakeClient struct {
	calls  int
	orders []zalopay.Order
	result zalopay.OrderResult
	err    error
}

func (f *fakeClient) CreateOrder(ctx context.Context, mode string, order zalopay.Order) (zalopay.OrderResult, error) {
	f.calls++
	f.orders = append(f.orders, order)
	if f.err != nil {
		return zalopay.OrderResult{}, f.err
	}
	return f.result, nil
}

var serviceCreds = gateways.Credentials{
	Mode:  gateways.ModeTest,
	AppID: "553",
	Key1:  "K1",
	Key2:  "K2",
}

func TestInitiateSuccess(t *testing.T) {
	db := newTestDB(t)
	p := seedPayment(t, db, "")

	client := &fakeClient{result: zalopay.OrderResult{
		OrderToken:  "tok_abc",
		RedirectURL: "https://sandbox.zalopay.vn/checkout?order_token=tok_abc",
	}}
	svc := NewService(NewRepo(db), fakeResolver{creds: serviceCreds}, client, "https://shop.test/cb")

	url, err := svc.Initiate(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://sandbox.zalopay.vn/checkout?order_token=tok_abc", url)

	require.Equal(t, 1, client.calls)
	order := client.orders[0]
	assert.Equal(t, "553", order.AppID)
	assert.Equal(t, int64(10000), order.Amount)
	assert.Equal(t, "a@b.com", order.AppUser)
	assert.NotEmpty(t, order.Mac)
}

func TestInitiateAlreadyPaidSkipsGateway(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepo(db)
	p := seedPayment(t, db, "")
	_, err := repo.ConditionalMarkPaid(context.Background(), transIDFor(p), "zalopay")
	require.NoError(t, err)

	client := &fakeClient{}
	svc := NewService(repo, fakeResolver{creds: serviceCreds}, client, "https://shop.test/cb")

	_, err = svc.Initiate(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, client.calls, "paid payment never reaches the gateway")
}

func TestInitiateUnknownPayment(t *testing.T) {
	db := newTestDB(t)
	client := &fakeClient{}
	svc := NewService(NewRepo(db), fakeResolver{creds: serviceCreds}, client, "https://shop.test/cb")

	_, err := svc.Initiate(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, client.calls)
}

func TestInitiateMissingConfig(t *testing.T) {
	db := newTestDB(t)
	p := seedPayment(t, db, "")

	client := &fakeClient{}
	svc := NewService(NewRepo(db), fakeResolver{err: gateways.ErrConfigMissing}, client, "https://shop.test/cb")

	_, err := svc.Initiate(context.Background(), p.ID)
	assert.ErrorIs(t, err, gateways.ErrConfigMissing)
	assert.Equal(t, 0, client.calls)
}

func TestInitiateMissingPayerEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepo(db)
	p := seedPayment(t, db, "")
	require.NoError(t, db.Model(&Payment{}).Where("id = ?", p.ID).
		Update("payer_information", []byte(`{"name":"Anh"}`)).Error)

	client := &fakeClient{}
	svc := NewService(repo, fakeResolver{creds: serviceCreds}, client, "https://shop.test/cb")

	_, err := svc.Initiate(context.Background(), p.ID)
	assert.ErrorIs(t, err, zalopay.ErrInvalidPayer)
	assert.Equal(t, 0, client.calls)
}

func TestInitiateTransportErrorPropagates(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepo(db)
	p := seedPayment(t, db, "")

	client := &fakeClient{err: &zalopay.TransportError{Err: assert.AnError}}
	svc := NewService(repo, fakeResolver{creds: serviceCreds}, client, "https://shop.test/cb")

	_, err := svc.Initiate(context.Background(), p.ID)

	var transport *zalopay.TransportError
	assert.ErrorAs(t, err, &transport)

	// record stays unpaid and retryable
	reloaded, ferr := repo.FindUnpaid(context.Background(), p.ID)
	require.NoError(t, ferr)
	assert.False(t, reloaded.IsPaid)
}

func TestInitiateRetryProducesFreshOrder(t *testing.T) {
	db := newTestDB(t)
	p := seedPayment(t, db, "")

	client := &fakeClient{result: zalopay.OrderResult{OrderToken: "tok", RedirectURL: "https://x/checkout?order_token=tok"}}
	svc := NewService(NewRepo(db), fakeResolver{creds: serviceCreds}, client, "https://shop.test/cb")

	_, err := svc.Initiate(context.Background(), p.ID)
	require.NoError(t, err)
	_, err = svc.Initiate(context.Background(), p.ID)
	require.NoError(t, err)

	require.Equal(t, 2, client.calls)
	assert.Equal(t, client.orders[0].AppTransID, client.orders[1].AppTransID,
		"same payment keeps the same trans id")
}
