package paystack

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/flexprice/paystack-gateway/internal/domain/order"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceRoundTrip(t *testing.T) {
	orders := []*order.Order{
		{GUID: uuid.New(), CustomOrderNumber: "1001"},
		{GUID: uuid.New(), CustomOrderNumber: "ORD-2024-0001"},
		{GUID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), CustomOrderNumber: "x"},
	}

	for _, o := range orders {
		got, err := DecodeReference(EncodeReference(o).Metadata())
		require.NoError(t, err)
		assert.Equal(t, PaymentReference{OrderGUID: o.GUID, CustomOrderNumber: o.CustomOrderNumber}, got)
	}
}

func TestDecodeReference(t *testing.T) {
	guid := uuid.New()

	tests := []struct {
		name     string
		metadata map[string]any
		want     PaymentReference
		wantErr  error
	}{
		{
			name: "extra keys are ignored",
			metadata: map[string]any{
				"orderGuid":         guid.String(),
				"customOrderNumber": "1001",
				"referrer":          "https://shop.example/checkout",
				"custom_fields":     []any{},
			},
			want: PaymentReference{OrderGUID: guid, CustomOrderNumber: "1001"},
		},
		{
			name: "numeric order number",
			metadata: map[string]any{
				"orderGuid":         guid.String(),
				"customOrderNumber": float64(1001),
			},
			want: PaymentReference{OrderGUID: guid, CustomOrderNumber: "1001"},
		},
		{
			name:     "nil metadata",
			metadata: nil,
			wantErr:  ierr.ErrMissingField,
		},
		{
			name:     "missing guid",
			metadata: map[string]any{"customOrderNumber": "1001"},
			wantErr:  ierr.ErrMissingField,
		},
		{
			name:     "empty order number",
			metadata: map[string]any{"orderGuid": guid.String(), "customOrderNumber": ""},
			wantErr:  ierr.ErrMissingField,
		},
		{
			name:     "object where a string belongs",
			metadata: map[string]any{"orderGuid": map[string]any{"v": 1}, "customOrderNumber": "1"},
			wantErr:  ierr.ErrMissingField,
		},
		{
			name:     "malformed guid",
			metadata: map[string]any{"orderGuid": "not-a-guid", "customOrderNumber": "1001"},
			wantErr:  ierr.ErrInvalidUUID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeReference(tt.metadata)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.True(t, ierr.IsDecode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetadataMap(t *testing.T) {
	assert.Nil(t, metadataMap(nil))
	assert.Nil(t, metadataMap([]byte(`""`)))
	assert.Nil(t, metadataMap([]byte(`0`)))
	assert.Equal(t, map[string]any{"a": "b"}, metadataMap([]byte(`{"a":"b"}`)))
	assert.Equal(t, map[string]any{"a": "b"}, metadataMap([]byte(`"{\"a\":\"b\"}"`)))
}
