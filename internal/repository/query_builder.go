package repository

import "github.com/doug-martin/goqu/v9"

// QueryBuilder collects query-string filters and renders them as goqu
// conditions, translating API field names to table column aliases.
type QueryBuilder interface {
	AddCondition(key string, value interface{})
	BuildConditions(aliases map[string]string) goqu.Ex
	HasConditions() bool
}

type queryBuilderImpl struct {
	conditions map[string]interface{}
}

func NewQueryBuilder() QueryBuilder {
	return &queryBuilderImpl{
		conditions: make(map[string]interface{}),
	}
}

func (q *queryBuilderImpl) AddCondition(key string, value interface{}) {
	q.conditions[key] = value
}

func (q *queryBuilderImpl) HasConditions() bool {
	return len(q.conditions) > 0
}

func (q *queryBuilderImpl) BuildConditions(aliases map[string]string) goqu.Ex {
	conditions := goqu.Ex{}
	for key, value := range q.conditions {
		if alias, ok := aliases[key]; ok {
			conditions[alias] = value
		} else {
			conditions[key] = value
		}
	}
	return conditions
}
