package types

// SettingKey identifies a persisted plugin setting
type SettingKey string

const (
	SettingKeyPaystackSecretKey           SettingKey = "paystackpaymentsettings.secretkey"
	SettingKeyPaystackAdditionalFee       SettingKey = "paystackpaymentsettings.additionalfee"
	SettingKeyPaystackEnableAdditionalFee SettingKey = "paystackpaymentsettings.enableadditionalfee"
)

// PaystackSettingKeys lists every key owned by the plugin
var PaystackSettingKeys = []SettingKey{
	SettingKeyPaystackSecretKey,
	SettingKeyPaystackAdditionalFee,
	SettingKeyPaystackEnableAdditionalFee,
}

func (k SettingKey) String() string {
	return string(k)
}
