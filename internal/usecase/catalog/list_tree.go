package catalog

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
)

type CategoryNode struct {
	Category *entity.JobItem
	Tasks    []*entity.JobItem
}

type ListTreeUseCase struct {
	itemRepo repository.JobItemRepository
}

func NewListTreeUseCase(itemRepo repository.JobItemRepository) *ListTreeUseCase {
	return &ListTreeUseCase{itemRepo: itemRepo}
}

// Execute returns active categories with their active tasks, both by name.
func (uc *ListTreeUseCase) Execute(ctx context.Context) ([]CategoryNode, error) {
	items, err := uc.itemRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make([]CategoryNode, 0)
	index := make(map[uuid.UUID]int)
	for _, it := range items {
		if it.IsCategory() {
			index[it.ID] = len(nodes)
			nodes = append(nodes, CategoryNode{Category: it, Tasks: []*entity.JobItem{}})
		}
	}
	for _, it := range items {
		if it.IsCategory() || it.ParentID == nil {
			continue
		}
		if i, ok := index[*it.ParentID]; ok {
			nodes[i].Tasks = append(nodes[i].Tasks, it)
		}
	}

	sort.Slice(nodes, func(i, k int) bool { return nodes[i].Category.Name < nodes[k].Category.Name })
	for _, n := range nodes {
		tasks := n.Tasks
		sort.Slice(tasks, func(i, k int) bool { return tasks[i].Name < tasks[k].Name })
	}
	return nodes, nil
}
