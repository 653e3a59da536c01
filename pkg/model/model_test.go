package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMinor(t *testing.T) {
	assert.Equal(t, "24999.00", FormatMinor(2499900))
	assert.Equal(t, "0.05", FormatMinor(5))
	assert.Equal(t, "-1.50", FormatMinor(-150))
}

func TestParseMajor(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"24999", 2499900, false},
		{"24999.5", 2499950, false},
		{" 0.10 ", 10, false},
		{"19.999", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMajor(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestOrderStatusEnum(t *testing.T) {
	assert.Equal(t, "paid", OrderStatusPaid.String())

	s, err := OrderStatusString("CANCELLED")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusCancelled, s)

	_, err = OrderStatusString("refunded")
	assert.Error(t, err)

	v, err := OrderStatusFailed.Value()
	require.NoError(t, err)
	assert.Equal(t, "failed", v)

	var scanned OrderStatus
	require.NoError(t, scanned.Scan([]byte("paid")))
	assert.Equal(t, OrderStatusPaid, scanned)
}

func TestLeadStatusJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Status LeadStatus `json:"status"`
	}{LeadStatusContacted})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"contacted"}`, string(data))

	var out struct {
		Status LeadStatus `json:"status"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"status":"lost"}`), &out))
}

func TestBlogPostPublishKeepsFirstDate(t *testing.T) {
	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	post := &BlogPost{}
	post.Publish(first)
	assert.Equal(t, PostStatusPublished, post.Status)

	post.Status = PostStatusDraft
	post.Publish(first.Add(48 * time.Hour))
	assert.Equal(t, first, *post.PublishedAt)
}
