// Package bisect models the commit graph git considers during a bisection
// and finds the evaluated commits closest to a starting point.
package bisect

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/blitz/hydrasect/internal/models"
)

// Commit holds the neighbours of a single commit inside the bisect graph.
type Commit struct {
	Parents  map[models.Oid]struct{}
	Children map[models.Oid]struct{}
}

// Graph is the set of commits still under consideration by git bisect. Bad
// is the currently known-bad commit, which heads the git log output.
type Graph struct {
	Bad     models.Oid
	Commits map[models.Oid]Commit
}

// ParseGraph reads "git log --format='%H %P' --bisect" output, one commit
// and its parents per line. Parent links are kept only when the parent
// itself is under consideration, and child links are derived from them.
func ParseGraph(r io.Reader) (Graph, error) {
	parents := make(map[models.Oid][]models.Oid)

	graph := Graph{Commits: make(map[models.Oid]Commit)}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		oids := make([]models.Oid, 0, len(fields))
		for _, field := range fields {
			oid, err := models.ParseOid(field)
			if err != nil {
				return Graph{}, fmt.Errorf("bisect graph line %d: %w", line, err)
			}
			oids = append(oids, oid)
		}

		if graph.Bad == "" {
			graph.Bad = oids[0]
		}
		parents[oids[0]] = oids[1:]
	}
	if err := scanner.Err(); err != nil {
		return Graph{}, fmt.Errorf("reading bisect graph: %w", err)
	}

	for oid, parentOids := range parents {
		commit := Commit{
			Parents:  make(map[models.Oid]struct{}),
			Children: make(map[models.Oid]struct{}),
		}
		for _, parent := range parentOids {
			if _, considered := parents[parent]; considered {
				commit.Parents[parent] = struct{}{}
			}
		}
		graph.Commits[oid] = commit
	}

	for oid, commit := range graph.Commits {
		for parent := range commit.Parents {
			graph.Commits[parent].Children[oid] = struct{}{}
		}
	}

	return graph, nil
}

// ClosestCommits breadth-first searches the bisect graph outwards from
// start and returns the nearest commits that are members of targets and
// pass filter, sorted for stable output. The bad commit is never returned
// since testing it again would not advance the bisection. A start outside
// the graph yields no results.
func ClosestCommits(start models.Oid, graph Graph, targets map[models.Oid]struct{}, filter func(models.Oid) (bool, error)) ([]models.Oid, error) {
	candidates := map[models.Oid]struct{}{start: {}}
	checked := make(map[models.Oid]struct{})

	for len(candidates) > 0 {
		var matches []models.Oid
		for oid := range candidates {
			if oid == graph.Bad {
				continue
			}
			if _, ok := targets[oid]; !ok {
				continue
			}

			keep, err := filter(oid)
			if err != nil {
				return nil, err
			}
			if keep {
				matches = append(matches, oid)
			}
		}
		if len(matches) > 0 {
			sort.Slice(matches, func(i, j int) bool { return matches[i] < matches[j] })
			return matches, nil
		}

		next := make(map[models.Oid]struct{})
		for oid := range candidates {
			checked[oid] = struct{}{}
		}
		for oid := range candidates {
			commit, ok := graph.Commits[oid]
			if !ok {
				continue
			}
			for parent := range commit.Parents {
				next[parent] = struct{}{}
			}
			for child := range commit.Children {
				next[child] = struct{}{}
			}
		}
		for oid := range checked {
			delete(next, oid)
		}
		candidates = next
	}

	return nil, nil
}
