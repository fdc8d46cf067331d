package service

import "github.com/flexprice/paystack-gateway/internal/testutil"

func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetCache(),
		stores.OrderRepo,
		stores.CustomerRepo,
		stores.SettingsRepo,
		stores.LocaleRepo,
	)
}
