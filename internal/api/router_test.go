package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/flexprice/paystack-gateway/internal/api/dto"
	v1 "github.com/flexprice/paystack-gateway/internal/api/v1"
	"github.com/flexprice/paystack-gateway/internal/domain/locale"
	"github.com/flexprice/paystack-gateway/internal/domain/settings"
	"github.com/flexprice/paystack-gateway/internal/httpclient"
	"github.com/flexprice/paystack-gateway/internal/integration/paystack"
	"github.com/flexprice/paystack-gateway/internal/integration/paystack/callback"
	"github.com/flexprice/paystack-gateway/internal/metrics"
	"github.com/flexprice/paystack-gateway/internal/service"
	"github.com/flexprice/paystack-gateway/internal/testutil"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const testAdminKey = "admin-secret"

type RouterSuite struct {
	testutil.BaseServiceTestSuite
	gateway *testutil.MockHTTPClient
	router  *gin.Engine
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	cfg := s.GetConfig()
	cfg.Auth.AdminKey = testAdminKey
	cfg.Store.BaseURL = "https://shop.example/"
	cfg.Store.AllowedURLs = []string{"https://second.example"}

	stores := s.GetStores()
	params := service.NewServiceParams(
		s.GetLogger(),
		cfg,
		s.GetCache(),
		stores.OrderRepo,
		stores.CustomerRepo,
		stores.SettingsRepo,
		stores.LocaleRepo,
	)
	orderSvc := service.NewOrderService(params)
	settingsSvc := service.NewSettingsService(params)
	pluginSvc := service.NewPluginService(params, settingsSvc)

	m := metrics.NewMetrics()
	s.gateway = testutil.NewMockHTTPClient()
	client := paystack.NewClientWithHTTP(cfg, httpclient.Client(s.gateway), m, s.GetLogger())
	paymentSvc := paystack.NewPaymentService(client, settingsSvc, stores.CustomerRepo, cfg, s.GetLogger())
	cb := callback.NewHandler(client, settingsSvc, orderSvc, nil, m, s.GetLogger())

	s.Require().NoError(stores.SettingsRepo.Upsert(s.GetContext(), &settings.Setting{
		Key:     types.SettingKeyPaystackSecretKey,
		Value:   "sk_test_1",
		StoreID: types.DefaultStoreScope,
	}))

	s.router = NewRouter(Handlers{
		Health:    v1.NewHealthHandler(s.GetLogger()),
		Payment:   v1.NewPaymentHandler(paymentSvc, cb, orderSvc, pluginSvc, cfg, s.GetLogger()),
		Configure: v1.NewConfigureHandler(settingsSvc, pluginSvc, s.GetLogger()),
	}, cfg, s.GetLogger(), m)
}

func (s *RouterSuite) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(types.HeaderStoreID, strconv.FormatInt(testutil.DefaultStoreID, 10))
	req.Header.Set(types.HeaderCustomerID, strconv.FormatInt(testutil.DefaultCustomerID, 10))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", nil, nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestMetrics() {
	rec := s.do(http.MethodGet, "/metrics", nil, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "go_goroutines")
}

func (s *RouterSuite) TestPostProcessRedirectsToGateway() {
	s.CreateCustomer("buyer@example.com")
	o := s.CreateOrder("10.01", s.GetNow())
	s.gateway.RegisterJSONResponse("/transaction/initialize", http.StatusOK,
		`{"status":true,"message":"ok","data":{"authorization_url":"https://checkout.paystack.com/xyz","access_code":"xyz","reference":"`+o.GUID.String()+`"}}`)

	rec := s.do(http.MethodPost, "/Plugins/PaymentGateway/PostProcess/"+o.GUID.String(), nil, nil)

	s.Equal(http.StatusFound, rec.Code)
	s.Equal("https://checkout.paystack.com/xyz", rec.Header().Get("Location"))
}

func (s *RouterSuite) TestPostProcessIgnoresForeignStoreURL() {
	s.CreateCustomer("buyer@example.com")
	o := s.CreateOrder("10.01", s.GetNow())
	s.gateway.RegisterJSONResponse("/transaction/initialize", http.StatusOK,
		`{"status":true,"message":"ok","data":{"authorization_url":"https://checkout.paystack.com/xyz","access_code":"xyz","reference":"`+o.GUID.String()+`"}}`)

	rec := s.do(http.MethodPost, "/Plugins/PaymentGateway/PostProcess/"+o.GUID.String(), nil, map[string]string{
		types.HeaderStoreURL: "https://evil.example",
	})
	s.Require().Equal(http.StatusFound, rec.Code)

	requests := s.gateway.Requests()
	s.Require().Len(requests, 1)
	var sent map[string]any
	s.Require().NoError(json.Unmarshal(requests[0].Body, &sent))
	s.Equal("https://shop.example/Plugins/PaymentGateway/Callback", sent["callback_url"])
}

func (s *RouterSuite) TestPostProcessWithoutEmail() {
	o := s.CreateOrder("10.01", s.GetNow())
	s.CreateCustomer("")

	rec := s.do(http.MethodPost, "/Plugins/PaymentGateway/PostProcess/"+o.GUID.String(), nil, nil)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Empty(s.gateway.Requests())
}

func (s *RouterSuite) TestPostProcessBadGUID() {
	rec := s.do(http.MethodPost, "/Plugins/PaymentGateway/PostProcess/nope", nil, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestCallbackRedirectsToCheckoutCompleted() {
	o := s.CreateOrder("10.01", s.GetNow())
	meta, err := json.Marshal(paystack.EncodeReference(o).Metadata())
	s.Require().NoError(err)
	s.gateway.RegisterJSONResponse("/transaction/verify/"+o.GUID.String(), http.StatusOK,
		`{"status":true,"message":"ok","data":{"status":"success","reference":"T1","metadata":`+string(meta)+`}}`)

	rec := s.do(http.MethodGet, "/Plugins/PaymentGateway/Callback?reference="+o.GUID.String(), nil, nil)

	s.Equal(http.StatusFound, rec.Code)
	s.Equal("https://shop.example/checkout/completed/"+strconv.FormatInt(o.ID, 10), rec.Header().Get("Location"))
}

func (s *RouterSuite) TestCallbackNetworkFailureIsEmpty() {
	s.CreateOrder("10.01", s.GetNow())
	s.gateway.FailWith(http.ErrHandlerTimeout)

	rec := s.do(http.MethodGet, "/Plugins/PaymentGateway/Callback?reference=abc", nil, nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Empty(rec.Body.String())
}

func (s *RouterSuite) TestCancelOrder() {
	rec := s.do(http.MethodGet, "/Plugins/PaymentGateway/CancelOrder", nil, nil)
	s.Equal(http.StatusFound, rec.Code)
	s.Equal("https://shop.example/", rec.Header().Get("Location"))

	o := s.CreateOrder("10.01", s.GetNow())
	rec = s.do(http.MethodGet, "/Plugins/PaymentGateway/CancelOrder", nil, map[string]string{
		types.HeaderStoreURL: "https://second.example",
	})
	s.Equal(http.StatusFound, rec.Code)
	s.Equal("https://second.example/orderdetails/"+strconv.FormatInt(o.ID, 10), rec.Header().Get("Location"))
}

func (s *RouterSuite) TestForeignStoreURLIsIgnored() {
	o := s.CreateOrder("10.01", s.GetNow())

	rec := s.do(http.MethodGet, "/Plugins/PaymentGateway/CancelOrder", nil, map[string]string{
		types.HeaderStoreURL: "https://evil.example",
	})

	s.Equal(http.StatusFound, rec.Code)
	s.Equal("https://shop.example/orderdetails/"+strconv.FormatInt(o.ID, 10), rec.Header().Get("Location"))
}

func (s *RouterSuite) TestCanRePostProcess() {
	o := s.CreateOrder("10.01", s.GetNow().Add(-time.Minute))

	rec := s.do(http.MethodGet, "/Plugins/PaymentGateway/CanRePostProcess/"+o.GUID.String(), nil, nil)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"allowed":true}`, rec.Body.String())
}

func (s *RouterSuite) TestDescriptorAndFee() {
	rec := s.do(http.MethodGet, "/Plugins/PaymentGateway/Descriptor", nil, nil)
	s.Equal(http.StatusOK, rec.Code)
	var desc dto.PaymentMethodDescriptor
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &desc))
	s.Equal(service.PluginSystemName, desc.SystemName)

	rec = s.do(http.MethodGet, "/Plugins/PaymentGateway/AdditionalFee?subtotal=100", nil, nil)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/Plugins/PaymentGateway/AdditionalFee?subtotal=abc", nil, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestAdminRequiresKey() {
	rec := s.do(http.MethodGet, "/Admin/PaymentGateway/Configure", nil, nil)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *RouterSuite) TestConfigureRoundTrip() {
	admin := map[string]string{types.HeaderAdminKey: testAdminKey}

	rec := s.do(http.MethodPost, "/Admin/PaymentGateway/Configure", map[string]any{
		"secret_key":            "sk_live_2",
		"additional_fee":        "1.5",
		"enable_additional_fee": true,
	}, admin)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp dto.ConfigurationResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("sk_live_2", resp.Model.SecretKey)
	s.Require().NotNil(resp.Notification)
	s.Contains(resp.Notification.ID, types.UUID_PREFIX_NOTIFICATION+"_")
	s.Equal("The settings have been updated successfully.", resp.Notification.Message)

	rec = s.do(http.MethodPost, "/Admin/PaymentGateway/Configure", map[string]any{
		"additional_fee": "-2",
	}, admin)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/Admin/PaymentGateway/Configure", nil, admin)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"secret_key":"sk_live_2"`)
}

func (s *RouterSuite) TestSavedNotificationIsLocalized() {
	s.Require().NoError(s.GetStores().LocaleRepo.AddOrUpdate(s.GetContext(), &locale.Resource{
		LanguageID: locale.DefaultLanguageID,
		Name:       service.ResourceSettingsSaved,
		Value:      "Configuración guardada",
	}))

	rec := s.do(http.MethodPost, "/Admin/PaymentGateway/Configure", map[string]any{
		"secret_key": "sk_live_3",
	}, map[string]string{types.HeaderAdminKey: testAdminKey})
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp dto.ConfigurationResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Require().NotNil(resp.Notification)
	s.Equal("Configuración guardada", resp.Notification.Message)
}

func (s *RouterSuite) TestInstallUninstall() {
	admin := map[string]string{types.HeaderAdminKey: testAdminKey}

	rec := s.do(http.MethodPost, "/Admin/PaymentGateway/Install", nil, admin)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(len(service.DefaultResources), s.GetStores().LocaleRepo.Len())

	rec = s.do(http.MethodPost, "/Admin/PaymentGateway/Uninstall", nil, admin)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(0, s.GetStores().LocaleRepo.Len())
	s.Equal(0, s.GetStores().SettingsRepo.Len())
}
