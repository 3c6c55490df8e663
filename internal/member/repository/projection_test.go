package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festy23/querydsl_study/internal/member/model"
	"github.com/festy23/querydsl_study/internal/query"
)

func TestMemberProjection(t *testing.T) {
	t.Run("populates every field", func(t *testing.T) {
		dto, err := MemberProjection.Build(query.Row{"id": int64(1), "username": "m1", "age": int64(20)})

		require.NoError(t, err)
		assert.Equal(t, model.MemberDto{ID: 1, Username: "m1", Age: 20}, dto)
	})

	t.Run("fails on null username", func(t *testing.T) {
		_, err := MemberProjection.Build(query.Row{"id": int64(1), "username": nil, "age": int64(20)})

		assert.ErrorIs(t, err, query.ErrMissingField)
	})

	t.Run("fails on missing column", func(t *testing.T) {
		_, err := MemberProjection.Build(query.Row{"id": int64(1), "username": "m1"})

		assert.ErrorIs(t, err, query.ErrMissingField)
	})
}

func TestUserProjection(t *testing.T) {
	t.Run("renames username to name", func(t *testing.T) {
		dto, err := UserProjection.Build(query.Row{"name": "m1", "age": int64(20)})

		require.NoError(t, err)
		require.NotNil(t, dto.Name)
		assert.Equal(t, "m1", *dto.Name)
		assert.Equal(t, 20, dto.Age)
	})

	t.Run("selects username under name", func(t *testing.T) {
		assert.Equal(t, []string{"members.username AS name", "members.age AS age"}, UserProjection.Select())
	})
}

func TestMemberTeamProjection_NullTeam(t *testing.T) {
	dto, err := MemberTeamProjection.Build(query.Row{
		"member_id": int64(5),
		"username":  []byte("loner"),
		"age":       int64(50),
		"team_id":   nil,
		"team_name": nil,
	})

	require.NoError(t, err)
	assert.Equal(t, "loner", *dto.Username)
	assert.Nil(t, dto.TeamID)
	assert.Nil(t, dto.TeamName)
}
