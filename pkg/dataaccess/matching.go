package dataaccess

import (
	"context"
	"fmt"

	"github.com/Jacobbrewer1/sam/pkg/entities"
	"github.com/jmoiron/sqlx"
)

// findGroupExchangeCandidatesSql matches offers symmetrically: the candidate offers one of the requested groups and
// has a request for the offered group. The IN clause is expanded to one placeholder per requested group.
const findGroupExchangeCandidatesSql = `
SELECT DISTINCT o.UserId, r.MessageId
  FROM GroupOffer o
  JOIN GroupRequest r ON r.UserId = o.UserId AND r.Course = o.Course
 WHERE o.UserId != ?
   AND o.Course = ?
   AND r.RequestedGroup = ?
   AND o.OfferedGroup IN (?)`

// candidateQuery builds the candidate query and its arguments for the requested groups. ok is false when there are no
// requested groups, in which case nothing can match.
func candidateQuery(authorID int64, course string, offeredGroup int, requestedGroups []int) (query string, args []any, ok bool, err error) {
	if len(requestedGroups) == 0 {
		return "", nil, false, nil
	}

	query, args, err = sqlx.In(findGroupExchangeCandidatesSql, authorID, course, offeredGroup, requestedGroups)
	if err != nil {
		return "", nil, false, fmt.Errorf("error building candidate query: %w", err)
	}
	return query, args, true, nil
}

func (c *connector) GetCandidatesForGroupExchange(ctx context.Context, authorID int64, course string, offeredGroup int, requestedGroups []int) ([]*entities.Candidate, error) {
	query, args, ok, err := candidateQuery(authorID, course, offeredGroup, requestedGroups)
	if err != nil {
		return nil, err
	} else if !ok {
		return nil, nil
	}

	var candidates []*entities.Candidate
	err = c.withRead(ctx, groupExchangeDalName, "get_candidates_for_group_exchange", func(db *sqlx.DB) error {
		if err := db.SelectContext(ctx, &candidates, db.Rebind(query), args...); err != nil {
			return fmt.Errorf("error getting group exchange candidates: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return nil, nil
	}
	return candidates, nil
}
