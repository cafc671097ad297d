// Package basedata provides sample entities for repository and service tests.
package basedata

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpapenbr/trackday-instructions/pkg/model"
	instrrepos "github.com/mpapenbr/trackday-instructions/pkg/repository/instruction"
	trackrepos "github.com/mpapenbr/trackday-instructions/pkg/repository/track"
)

func SampleTrack() *model.Track {
	return &model.Track{
		Name:          "Bilster Berg",
		NoiseLimit:    98,
		Location:      "Bad Driburg",
		BuiltYear:     2013,
		Length:        4.2,
		Corners:       19,
		LogoURL:       "https://example.com/logo.png",
		TrackShapeURL: "https://example.com/shape.png",
	}
}

func SampleInstruction(trackID string) *model.Instruction {
	return &model.Instruction{
		InstructionName: "Trackday June",
		TrackID:         trackID,
		TrackName:       "Bilster Berg",
		Dates:           []string{"2025-05-30"},
		Schedule: []model.ScheduleEntry{{
			Date:      "2025-05-30",
			StartTime: "09:00",
			EndTime:   "17:00",
			Activity:  "Track Session",
			Location:  "Main Track",
		}},
		Locations: []model.Location{{
			Name:    "Reception",
			Address: "Paddock 1",
		}},
	}
}

func CreateSampleTrack(pool *pgxpool.Pool) *model.DbTrack {
	dbTrack := &model.DbTrack{Data: *SampleTrack()}
	if err := pgx.BeginFunc(context.Background(), pool, func(tx pgx.Tx) error {
		return trackrepos.Create(context.Background(), tx, dbTrack)
	}); err != nil {
		log.Fatalf("CreateSampleTrack: %v\n", err)
	}
	return dbTrack
}

func CreateSampleInstruction(pool *pgxpool.Pool, trackID string) *model.DbInstruction {
	dbInstr := &model.DbInstruction{Data: *SampleInstruction(trackID)}
	if err := pgx.BeginFunc(context.Background(), pool, func(tx pgx.Tx) error {
		return instrrepos.Create(context.Background(), tx, dbInstr)
	}); err != nil {
		log.Fatalf("CreateSampleInstruction: %v\n", err)
	}
	return dbInstr
}
