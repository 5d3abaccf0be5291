package service

import (
	"Inkpost/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditable(t *testing.T) {
	post := &model.Post{ID: 1, UserID: 10}

	assert.True(t, Editable(Actor{ID: 10}, post))
	assert.True(t, Editable(Actor{ID: 99, IsAdmin: true}, post))
	assert.False(t, Editable(Actor{ID: 11}, post))
	assert.False(t, Editable(Actor{}, &model.Comment{}))

	self := &model.User{ID: 3}
	assert.True(t, Editable(Actor{ID: 3}, self))
	assert.False(t, Editable(Actor{ID: 4}, self))
}
