package main

import (
	"database/sql"
	"testing"

	"github.com/Jacobbrewer1/sam/pkg/dataaccess"
	"github.com/Jacobbrewer1/sam/pkg/entities"
	"github.com/stretchr/testify/require"
)

func TestParseRequestedGroups(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		offered int
		want    []int
		wantErr error
	}{
		{name: "single", raw: "2", offered: 1, want: []int{2}},
		{name: "commas and spaces", raw: "4, 2 3", offered: 1, want: []int{2, 3, 4}},
		{name: "duplicates", raw: "3,3,2", offered: 1, want: []int{2, 3}},
		{name: "empty", raw: " , ", offered: 1, wantErr: dataaccess.ErrNoRequestedGroups},
		{name: "not a number", raw: "2,b", offered: 1, wantErr: errInvalidGroup},
		{name: "zero", raw: "0", offered: 1, wantErr: errInvalidGroup},
		{name: "offered group", raw: "2,1", offered: 1, wantErr: errRequestedOffered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRequestedGroups(tt.raw, tt.offered)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCandidates(t *testing.T) {
	require.Contains(t, formatCandidates("1", "2", nil), "Nobody matches it yet")

	got := formatCandidates("1", "2", []*entities.Candidate{
		{UserID: 10, MessageID: sql.NullInt64{Int64: 99, Valid: true}},
		{UserID: 11},
	})
	require.Contains(t, got, "\n- <@10> https://discord.com/channels/1/2/99")
	require.Contains(t, got, "\n- <@11>")
	require.NotContains(t, got, "<@11> https://")
}

func TestFormatGroupExchanges(t *testing.T) {
	require.Equal(t, "You have no open offers.", formatGroupExchanges(nil))

	got := formatGroupExchanges([]*entities.GroupExchange{
		{UserID: 1, Course: "100", OfferedGroup: 1, RequestedGroup: 2},
		{UserID: 1, Course: "100", OfferedGroup: 1, RequestedGroup: 3},
		{UserID: 1, Course: "200", OfferedGroup: 4, RequestedGroup: 5},
	})
	require.Equal(t, "Your offers:\n- <#100>: group 1 for 2, 3\n- <#200>: group 4 for 5", got)
}

func TestExchangesForCourse(t *testing.T) {
	exchanges := []*entities.GroupExchange{
		{Course: "100", RequestedGroup: 2},
		{Course: "200", RequestedGroup: 5},
		{Course: "100", RequestedGroup: 3},
	}

	require.Len(t, exchangesForCourse(exchanges, "100"), 2)
	require.Nil(t, exchangesForCourse(exchanges, "300"))
	require.Nil(t, exchangesForCourse(nil, "100"))
}

func TestJoinGroups(t *testing.T) {
	require.Equal(t, "2 or 3", joinGroups([]int{2, 3}, " or "))
	require.Equal(t, "", joinGroups(nil, ", "))
}
