package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionGone(t *testing.T) {
	assert.True(t, subscriptionGone(http.StatusNotFound))
	assert.True(t, subscriptionGone(http.StatusGone))

	assert.False(t, subscriptionGone(http.StatusOK))
	assert.False(t, subscriptionGone(http.StatusCreated))
	assert.False(t, subscriptionGone(http.StatusBadRequest))
	assert.False(t, subscriptionGone(http.StatusTooManyRequests))
	assert.False(t, subscriptionGone(http.StatusInternalServerError))
}
