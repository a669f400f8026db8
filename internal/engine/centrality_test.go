package engine

import (
	"context"
	"math"
	"testing"

	"github.com/relgraphio/relgraph/internal/models"
)

func centralityScores(res *models.CentralityResult) map[int64]float64 {
	scores := make(map[int64]float64, len(res.Scores))
	for _, s := range res.Scores {
		scores[s.ID] = s.Score
	}

	return scores
}

func starStore() *fakeStore {
	fs := newFakeStore()
	for leaf := int64(2); leaf <= 5; leaf++ {
		fs.addEdge(1, leaf, 1, nil)
	}

	return fs
}

func TestCentrality_DegreeStar(t *testing.T) {
	eng := newTestEngine(starStore())

	res, err := eng.Centrality(context.Background(), testSchema(), models.CentralityRequest{Kind: models.CentralityDegree})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Scores[0].ID != 1 {
		t.Fatalf("expected the hub ranked first, got node %d", res.Scores[0].ID)
	}

	scores := centralityScores(res)

	if scores[1] != 1 {
		t.Fatalf("expected hub degree 1.0, got %v", scores[1])
	}

	if scores[2] != 0.25 {
		t.Fatalf("expected leaf degree 0.25, got %v", scores[2])
	}
}

func TestCentrality_BetweennessStar(t *testing.T) {
	eng := newTestEngine(starStore())

	res, err := eng.Centrality(context.Background(), testSchema(), models.CentralityRequest{Kind: models.CentralityBetweenness})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scores := centralityScores(res)

	// Every leaf pair routes through the hub; leaves carry nothing.
	if math.Abs(scores[1]-1) > 1e-9 {
		t.Fatalf("expected hub betweenness 1.0, got %v", scores[1])
	}

	for leaf := int64(2); leaf <= 5; leaf++ {
		if scores[leaf] != 0 {
			t.Fatalf("expected leaf %d betweenness 0, got %v", leaf, scores[leaf])
		}
	}
}

func TestCentrality_ClosenessStar(t *testing.T) {
	eng := newTestEngine(starStore())

	res, err := eng.Centrality(context.Background(), testSchema(), models.CentralityRequest{Kind: models.CentralityCloseness})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scores := centralityScores(res)

	if math.Abs(scores[1]-1) > 1e-9 {
		t.Fatalf("expected hub closeness 1.0, got %v", scores[1])
	}

	// Leaf: one hop to the hub, two to each other leaf.
	if math.Abs(scores[2]-4.0/7.0) > 1e-9 {
		t.Fatalf("expected leaf closeness 4/7, got %v", scores[2])
	}
}

func TestCentrality_PageRankFavorsLinkedNode(t *testing.T) {
	fs := newFakeStore().
		addEdge(2, 1, 1, nil).
		addEdge(3, 1, 1, nil).
		addEdge(4, 1, 1, nil)

	eng := newTestEngine(fs)

	res, err := eng.Centrality(context.Background(), testSchema(), models.CentralityRequest{Kind: models.CentralityPageRank})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Scores[0].ID != 1 {
		t.Fatalf("expected the pointed-to node ranked first, got node %d", res.Scores[0].ID)
	}

	sum := 0.0
	for _, s := range res.Scores {
		sum += s.Score
	}

	if math.Abs(sum-1) > 1e-6 {
		t.Fatalf("expected ranks to sum to 1, got %v", sum)
	}
}

func TestCentrality_TopNTruncates(t *testing.T) {
	eng := newTestEngine(starStore())

	res, err := eng.Centrality(context.Background(), testSchema(), models.CentralityRequest{
		Kind: models.CentralityDegree,
		TopN: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Scores) != 2 {
		t.Fatalf("expected 2 ranked entries, got %d", len(res.Scores))
	}

	if res.NodeCount != 5 {
		t.Fatalf("node count reports the whole subgraph, got %d", res.NodeCount)
	}
}

func TestCentrality_TiesBreakByNodeID(t *testing.T) {
	fs := newFakeStore().
		addEdge(1, 2, 1, nil).
		addEdge(3, 4, 1, nil)

	eng := newTestEngine(fs)

	res, err := eng.Centrality(context.Background(), testSchema(), models.CentralityRequest{Kind: models.CentralityDegree})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(res.Scores); i++ {
		prev, cur := res.Scores[i-1], res.Scores[i]
		if prev.Score == cur.Score && prev.ID > cur.ID {
			t.Fatalf("equal scores must order by ascending ID: %v", res.Scores)
		}
	}
}

func TestCentrality_UnknownKind(t *testing.T) {
	eng := newTestEngine(newFakeStore().addNode(1, nil))

	_, err := eng.Centrality(context.Background(), testSchema(), models.CentralityRequest{Kind: "fame"})
	if !models.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}
