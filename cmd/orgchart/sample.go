package main

import (
	"context"

	"github.com/jacksonlee411/orgchart/modules/orgchart/domain/types"
)

type sampleSource struct{}

func (sampleSource) LoadHierarchy(context.Context) (types.Employee, error) {
	return sampleChart(), nil
}

func sampleChart() types.Employee {
	return types.Employee{ID: 1, Name: "John Smith", Subordinates: []types.Employee{
		{ID: 2, Name: "Margot Donald", Subordinates: []types.Employee{
			{ID: 3, Name: "Cassandra Reynolds", Subordinates: []types.Employee{
				{ID: 5, Name: "Mary Blue"},
				{ID: 4, Name: "Bob Saget", Subordinates: []types.Employee{
					{ID: 6, Name: "Tina Teff", Subordinates: []types.Employee{
						{ID: 7, Name: "Will Turner"},
					}},
				}},
			}},
		}},
		{ID: 8, Name: "Tyler Simpson", Subordinates: []types.Employee{
			{ID: 9, Name: "Harry Tobs", Subordinates: []types.Employee{
				{ID: 10, Name: "Thomas Brown"},
			}},
			{ID: 11, Name: "George Carrey"},
			{ID: 12, Name: "Gary Styles"},
		}},
		{ID: 13, Name: "Ben Willis"},
		{ID: 15, Name: "Georgina Flangy", Subordinates: []types.Employee{
			{ID: 16, Name: "Sophie Turner"},
		}},
	}}
}
