package sqlstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/findbus/internal/domain"
	"github.com/findbus/internal/domain/repository"
	"github.com/findbus/internal/pkg/errors"
	"github.com/findbus/internal/repository/sqlstore"
	"github.com/findbus/internal/repository/sqlstore/testhelpers"
)

type BusRepositoryTestSuite struct {
	suite.Suite
	setup  func(t *testing.T) *testhelpers.TestDB
	testDB *testhelpers.TestDB
	repo   repository.BusRepository
	ctx    context.Context
}

func (s *BusRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.testDB = s.setup(s.T())
	s.testDB.InsertBuses(s.T(), testhelpers.DefaultBuses()...)
	s.repo = sqlstore.NewBusRepository(s.testDB.Provider)
}

func (s *BusRepositoryTestSuite) fullCriteria() domain.FilterCriteria {
	price, err := s.repo.MinMax(s.ctx, domain.ColPrice)
	s.Require().NoError(err)
	rating, err := s.repo.MinMax(s.ctx, domain.ColStarRating)
	s.Require().NoError(err)
	seats, err := s.repo.MinMax(s.ctx, domain.ColSeatsAvailable)
	s.Require().NoError(err)

	return domain.FilterCriteria{
		Price:              price.Clamp(nil, nil),
		Rating:             rating.Clamp(nil, nil),
		Seats:              seats.Clamp(nil, nil),
		IncludeUnrated:     true,
		MaxDurationSeconds: domain.MaxDurationHoursLimit * 3600,
	}
}

// ============================================================================
// Domain lookups
// ============================================================================

func (s *BusRepositoryTestSuite) TestDistinctValues_Routes() {
	routes, err := s.repo.DistinctValues(s.ctx, domain.ColRouteName)

	s.NoError(err)
	s.Equal([]string{"Chennai to Bangalore", "Hyderabad to Vijayawada", "Kochi to Kottayam"}, routes)
}

func (s *BusRepositoryTestSuite) TestDistinctValues_RejectsUnknownColumn() {
	_, err := s.repo.DistinctValues(s.ctx, "route_name; DROP TABLE busdetails")

	s.ErrorIs(err, errors.ErrInvalidColumn)
}

func (s *BusRepositoryTestSuite) TestMinMax_Price() {
	bounds, err := s.repo.MinMax(s.ctx, domain.ColPrice)

	s.NoError(err)
	s.Equal(domain.Bounds{Min: 100, Max: 1500, Valid: true}, bounds)
}

func (s *BusRepositoryTestSuite) TestMinMax_EmptyTable() {
	_, err := s.testDB.DB.Exec("DELETE FROM busdetails")
	s.Require().NoError(err)

	bounds, err := s.repo.MinMax(s.ctx, domain.ColSeatsAvailable)

	s.NoError(err)
	s.False(bounds.Valid)
	s.Nil(bounds.Clamp(nil, nil))
}

// ============================================================================
// Search
// ============================================================================

func (s *BusRepositoryTestSuite) TestSearch_FullRangeReturnsAllRows() {
	buses, err := s.repo.Search(s.ctx, s.fullCriteria())

	s.NoError(err)
	s.Len(buses, len(testhelpers.DefaultBuses()))
}

func (s *BusRepositoryTestSuite) TestSearch_PriceRangeScenario() {
	_, err := s.testDB.DB.Exec("DELETE FROM busdetails")
	s.Require().NoError(err)
	s.testDB.InsertBuses(s.T(),
		testhelpers.BusRow{RouteName: "R", BusName: "Cheap", BusType: "Seater", Departing: "08:00:00", Duration: "1:00:00", Reaching: "09:00:00", Rating: 3, Price: 100, Seats: 10},
		testhelpers.BusRow{RouteName: "R", BusName: "Middle", BusType: "Seater", Departing: "09:00:00", Duration: "1:00:00", Reaching: "10:00:00", Rating: 3, Price: 500, Seats: 10},
		testhelpers.BusRow{RouteName: "R", BusName: "Pricey", BusType: "Seater", Departing: "10:00:00", Duration: "1:00:00", Reaching: "11:00:00", Rating: 3, Price: 900, Seats: 10},
	)

	c := s.fullCriteria()
	c.Price = &domain.Range{Min: 200, Max: 600}
	buses, err := s.repo.Search(s.ctx, c)

	s.NoError(err)
	s.Require().Len(buses, 1)
	s.Equal("Middle", buses[0].BusName)
	s.Equal(500.0, buses[0].Price)
}

func (s *BusRepositoryTestSuite) TestSearch_RouteFilter() {
	c := s.fullCriteria()
	route := "Chennai to Bangalore"
	c.Route = &route

	buses, err := s.repo.Search(s.ctx, c)

	s.NoError(err)
	s.Len(buses, 2)
	for _, b := range buses {
		s.Equal(route, b.RouteName)
		s.Require().NotNil(b.RouteLink)
	}
}

func (s *BusRepositoryTestSuite) TestSearch_UnknownRouteIsEmpty() {
	c := s.fullCriteria()
	route := "Nonexistent Route"
	c.Route = &route

	buses, err := s.repo.Search(s.ctx, c)

	s.NoError(err)
	s.Empty(buses)
}

func (s *BusRepositoryTestSuite) TestSearch_BusTypesWithQuotes() {
	c := s.fullCriteria()
	c.BusTypes = []string{"O'Brien Travels", "A/C Sleeper (2+1)"}

	buses, err := s.repo.Search(s.ctx, c)

	s.NoError(err)
	s.Len(buses, 3)
	for _, b := range buses {
		s.Contains(c.BusTypes, b.BusType)
	}

	c.BusTypes = []string{"O'Brien Travels"}
	buses, err = s.repo.Search(s.ctx, c)
	s.NoError(err)
	s.Require().Len(buses, 1)
	s.Equal("O'Brien Express", buses[0].BusName)
	s.Nil(buses[0].RouteLink)
}

func (s *BusRepositoryTestSuite) TestSearch_MaxDuration() {
	c := s.fullCriteria()
	c.MaxDurationSeconds = 6 * 3600

	buses, err := s.repo.Search(s.ctx, c)

	s.NoError(err)
	s.Len(buses, 2)
	for _, b := range buses {
		s.LessOrEqual(b.DurationSeconds, float64(c.MaxDurationSeconds))
	}
}

func (s *BusRepositoryTestSuite) TestSearch_FormatsTimesAndNormalizesDuration() {
	c := s.fullCriteria()
	c.BusTypes = []string{"Non A/C Seater (2+2)"}

	buses, err := s.repo.Search(s.ctx, c)

	s.NoError(err)
	s.Require().Len(buses, 1)
	s.Equal("07:15", buses[0].DepartingTime)
	s.Equal("13:00", buses[0].ReachingTime)
	s.Equal(float64(5*3600+45*60), buses[0].DurationSeconds)
	s.Equal(int64(30), buses[0].SeatsAvailable)
}

func (s *BusRepositoryTestSuite) TestSearch_DefaultOrderIsByDeparture() {
	buses, err := s.repo.Search(s.ctx, s.fullCriteria())

	s.NoError(err)
	s.Require().Len(buses, 4)
	s.Equal([]string{"07:15", "09:05", "21:30", "22:00"},
		[]string{buses[0].DepartingTime, buses[1].DepartingTime, buses[2].DepartingTime, buses[3].DepartingTime})
}

func (s *BusRepositoryTestSuite) TestSearch_SortByPrice() {
	c := s.fullCriteria()
	c.Sort = domain.SortPrice

	buses, err := s.repo.Search(s.ctx, c)

	s.NoError(err)
	s.Require().Len(buses, 4)
	s.Equal(100.0, buses[0].Price)
	s.Equal(1500.0, buses[3].Price)
}

func (s *BusRepositoryTestSuite) TestSearch_FullRangeKeepsUnratedBuses() {
	s.testDB.InsertBuses(s.T(), testhelpers.UnratedBus())

	buses, err := s.repo.Search(s.ctx, s.fullCriteria())

	s.NoError(err)
	s.Require().Len(buses, len(testhelpers.DefaultBuses())+1)
	var unrated []string
	for _, b := range buses {
		if b.StarRating == nil {
			unrated = append(unrated, b.BusName)
		}
	}
	s.Equal([]string{"Parveen Travels"}, unrated)
}

func (s *BusRepositoryTestSuite) TestSearch_NarrowedRatingDropsUnratedBuses() {
	s.testDB.InsertBuses(s.T(), testhelpers.UnratedBus())
	c := s.fullCriteria()
	c.Rating = &domain.Range{Min: 4, Max: 5}
	c.IncludeUnrated = false

	buses, err := s.repo.Search(s.ctx, c)

	s.NoError(err)
	s.Require().Len(buses, 2)
	for _, b := range buses {
		s.Require().NotNil(b.StarRating)
		s.GreaterOrEqual(*b.StarRating, 4.0)
	}
}

func (s *BusRepositoryTestSuite) TestSearch_NoRatingsAtAll() {
	_, err := s.testDB.DB.Exec("DELETE FROM busdetails")
	s.Require().NoError(err)
	s.testDB.InsertBuses(s.T(), testhelpers.UnratedBus())

	bounds, err := s.repo.MinMax(s.ctx, domain.ColStarRating)
	s.Require().NoError(err)
	s.False(bounds.Valid)

	buses, err := s.repo.Search(s.ctx, s.fullCriteria())

	s.NoError(err)
	s.Require().Len(buses, 1)
	s.Nil(buses[0].StarRating)
}

func (s *BusRepositoryTestSuite) TestSearch_SortByRatingPutsUnratedLast() {
	s.testDB.InsertBuses(s.T(), testhelpers.UnratedBus())
	c := s.fullCriteria()
	c.Sort = domain.SortRating

	buses, err := s.repo.Search(s.ctx, c)

	s.NoError(err)
	s.Require().Len(buses, 5)
	s.Equal("O'Brien Express", buses[0].BusName)
	s.Nil(buses[4].StarRating)
}

func (s *BusRepositoryTestSuite) TestSearch_SeatsRange() {
	c := s.fullCriteria()
	c.Seats = &domain.Range{Min: 1, Max: 12}

	buses, err := s.repo.Search(s.ctx, c)

	s.NoError(err)
	s.Len(buses, 2)
	for _, b := range buses {
		s.GreaterOrEqual(b.SeatsAvailable, int64(1))
		s.LessOrEqual(b.SeatsAvailable, int64(12))
	}
}

func TestBusRepositoryTestSuite(t *testing.T) {
	suite.Run(t, &BusRepositoryTestSuite{setup: testhelpers.SetupTestDB})
}

// TEST_DB_DRIVER=mysql|postgres runs the same suite against a real server.
func TestBusRepositoryTestSuite_Server(t *testing.T) {
	suite.Run(t, &BusRepositoryTestSuite{setup: testhelpers.SetupServerDB})
}
