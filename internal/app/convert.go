package service

import (
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/ranking"
	"github.com/okian/vgsales/internal/domain/types"
)

func tableRows(records []model.SaleRecord) []types.TableRow {
	out := make([]types.TableRow, len(records))
	for i, r := range records {
		out[i] = types.TableRow{
			Rank:      r.Rank,
			Name:      r.Name,
			Platform:  r.Platform,
			Year:      r.Year.Ptr(),
			Genre:     r.Genre,
			Publisher: r.Publisher,
			Sales:     r.Sales.Millions(),
		}
	}
	return out
}

func rankedEntities(res ranking.Result) []types.RankedEntity {
	out := make([]types.RankedEntity, len(res.Entries))
	for i, e := range res.Entries {
		out[i] = types.RankedEntity{
			Position: e.Position,
			Entity:   e.Entity,
			Sales:    e.Sales.Millions(),
			MinRank:  e.MinRank,
		}
	}
	return out
}

func chartPoints(points []ranking.Point) []types.ChartPoint {
	out := make([]types.ChartPoint, len(points))
	for i, p := range points {
		out[i] = types.ChartPoint{Entity: p.Entity, Genre: p.Genre, Sales: p.Sales.Millions()}
	}
	return out
}
