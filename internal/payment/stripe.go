package payment

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/par4d15e/blogbackendserver-sub001/config"
)

// stripeClient 外嵌熔断器的 Stripe 客户端
// Stripe 故障时快速失败, 避免支付接口把请求堆满
type stripeClient struct {
	api *client.API
	cb  *gobreaker.CircuitBreaker
}

func newStripeClient() *stripeClient {
	api := &client.API{}
	api.Init(config.Conf.Stripe.SecretKey, nil)

	st := gobreaker.Settings{
		Name:        "Stripe",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logrus.Warnf("熔断器[%s]状态从 %s 变为 %s", name, from, to)
		},
	}

	return &stripeClient{
		api: api,
		cb:  gobreaker.NewCircuitBreaker(st),
	}
}

func (s *stripeClient) currency() string {
	if c := config.Conf.Stripe.Currency; c != "" {
		return c
	}
	return "usd"
}

// CreateProduct 创建 Stripe 商品和价格
func (s *stripeClient) CreateProduct(name, description, coverURL string, amountCents int64, metadata map[string]string) (*stripe.Product, error) {
	result, err := s.cb.Execute(func() (interface{}, error) {
		params := &stripe.ProductParams{
			Name:        stripe.String(name),
			Description: stripe.String(description),
		}
		if coverURL != "" {
			params.Images = stripe.StringSlice([]string{coverURL})
		}
		for k, v := range metadata {
			params.AddMetadata(k, v)
		}

		product, err := s.api.Products.New(params)
		if err != nil {
			return nil, err
		}

		_, err = s.api.Prices.New(&stripe.PriceParams{
			Product:    stripe.String(product.ID),
			UnitAmount: stripe.Int64(amountCents),
			Currency:   stripe.String(s.currency()),
		})
		if err != nil {
			return nil, err
		}
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*stripe.Product), nil
}

// FindOrCreateCustomer 按邮箱复用已有的 Stripe 客户
func (s *stripeClient) FindOrCreateCustomer(email, name string) (string, error) {
	result, err := s.cb.Execute(func() (interface{}, error) {
		listParams := &stripe.CustomerListParams{Email: stripe.String(email)}
		listParams.Limit = stripe.Int64(1)
		iter := s.api.Customers.List(listParams)
		if iter.Next() {
			return iter.Customer().ID, nil
		}
		if err := iter.Err(); err != nil {
			return "", err
		}

		customer, err := s.api.Customers.New(&stripe.CustomerParams{
			Email: stripe.String(email),
			Name:  stripe.String(name),
		})
		if err != nil {
			return "", err
		}
		return customer.ID, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// CreateIntent 创建支付意图
func (s *stripeClient) CreateIntent(amountCents int64, customerID, description string, metadata map[string]string) (*stripe.PaymentIntent, error) {
	result, err := s.cb.Execute(func() (interface{}, error) {
		params := &stripe.PaymentIntentParams{
			Amount:      stripe.Int64(amountCents),
			Currency:    stripe.String(s.currency()),
			Customer:    stripe.String(customerID),
			Description: stripe.String(description),
			AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
				Enabled:        stripe.Bool(true),
				AllowRedirects: stripe.String("always"),
			},
		}
		for k, v := range metadata {
			params.AddMetadata(k, v)
		}
		return s.api.PaymentIntents.New(params)
	})
	if err != nil {
		return nil, err
	}
	return result.(*stripe.PaymentIntent), nil
}

// GetIntent 查询支付意图
func (s *stripeClient) GetIntent(id string) (*stripe.PaymentIntent, error) {
	result, err := s.cb.Execute(func() (interface{}, error) {
		return s.api.PaymentIntents.Get(id, nil)
	})
	if err != nil {
		return nil, err
	}
	return result.(*stripe.PaymentIntent), nil
}

// GetPaymentMethodType 支付方式类型, 拿不到时回退为 card
func (s *stripeClient) GetPaymentMethodType(id string) string {
	if id == "" {
		return "card"
	}

	result, err := s.cb.Execute(func() (interface{}, error) {
		return s.api.PaymentMethods.Get(id, nil)
	})
	if err != nil {
		logrus.WithError(err).WithField("payment_method", id).Warn("查询支付方式失败")
		return "card"
	}
	return string(result.(*stripe.PaymentMethod).Type)
}
