package echoapi

import (
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/growthapp/garden/core/games"
	"github.com/growthapp/garden/core/user"
)

type gamesApi struct {
	usrSvc   *user.Service
	registry *games.Registry
	points   *games.PointsLedger
	content  *games.Content
	newRand  func() *rand.Rand
}

func registerGamesAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := gamesApi{
		usrSvc:   deps.UserSvc,
		registry: deps.Games,
		points:   deps.Points,
		content:  deps.GameContent,
		newRand:  deps.NewRand,
	}

	gg := g.Group("/games", jwt)
	gg.GET("/points", api.retrievePoints)
	gg.GET("/sessions", api.querySessions)
	gg.DELETE("/sessions/:sid", api.abandon)

	gg.POST("/coin-counter", api.startCoinCounter)
	gg.POST("/coin-counter/:sid/answer", api.answerCoinCounter)

	gg.POST("/budget-builder", api.startBudgetBuilder)
	gg.POST("/budget-builder/:sid/allocate", api.allocateBudget)
	gg.POST("/budget-builder/:sid/answer", api.answerScenario)

	gg.POST("/savings-sprint", api.startSavingsSprint)
	gg.POST("/savings-sprint/:sid/week", api.playWeek)

	qg := g.Group("/quizzes", jwt)
	qg.GET("", api.queryQuizzes)
	qg.GET("/:id", api.retrieveQuiz)
	qg.POST("/:id/submit", api.submitQuiz)
}

func gameView(g games.Game) interface{} {
	switch g := g.(type) {
	case *games.CoinCounter:
		return g.View()
	case *games.BudgetBuilder:
		return g.View()
	case *games.SavingsSprint:
		return g.View()
	}
	return nil
}

func (api *gamesApi) ctxUserID(ctx echo.Context) (string, error) {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return "", errors.Wrap(err, "getting context user")
	}
	return usr.ID, nil
}

func (api *gamesApi) start(ctx echo.Context, g games.Game) error {
	uid, err := api.ctxUserID(ctx)
	if err != nil {
		return err
	}
	sess := api.registry.Start(uid, g)
	return ctx.JSON(http.StatusCreated, GameResponse{Session: sess, Game: gameView(g)})
}

// play runs fn on the session :sid of the context user, fn returning the move result.
func (api *gamesApi) play(ctx echo.Context, fn func(g games.Game) (interface{}, error)) error {
	uid, err := api.ctxUserID(ctx)
	if err != nil {
		return err
	}

	var result interface{}
	sess, err := api.registry.Play(uid, ctx.Param("sid"), func(g games.Game) (fnErr error) {
		result, fnErr = fn(g)
		return fnErr
	})
	if err != nil {
		return errors.Wrap(err, "playing")
	}

	res := GameResponse{Session: sess, Result: result, Game: gameView(sess.Game)}
	if sess.Game.Over() {
		p, err := api.points.Points(uid)
		if err != nil {
			return errors.Wrap(err, "getting points")
		}
		res.Points = &p
	}
	return ctx.JSON(http.StatusOK, res)
}

// Handlers

func (api *gamesApi) retrievePoints(ctx echo.Context) error {
	uid, err := api.ctxUserID(ctx)
	if err != nil {
		return err
	}
	p, err := api.points.Points(uid)
	if err != nil {
		return errors.Wrap(err, "getting points")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *gamesApi) querySessions(ctx echo.Context) error {
	uid, err := api.ctxUserID(ctx)
	if err != nil {
		return err
	}
	sessions := make([]GameResponse, 0)
	for _, sess := range api.registry.Sessions(uid) {
		sessions = append(sessions, GameResponse{Session: sess, Game: gameView(sess.Game)})
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *gamesApi) abandon(ctx echo.Context) error {
	uid, err := api.ctxUserID(ctx)
	if err != nil {
		return err
	}
	if err = api.registry.Abandon(uid, ctx.Param("sid")); err != nil {
		return errors.Wrap(err, "abandoning game")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gamesApi) startCoinCounter(ctx echo.Context) error {
	return api.start(ctx, games.NewCoinCounter(api.content, api.newRand(), nil))
}

func (api *gamesApi) answerCoinCounter(ctx echo.Context) error {
	var data CoinAnswerRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CoinAnswerRequest")
	}
	return api.play(ctx, func(g games.Game) (interface{}, error) {
		cc, ok := g.(*games.CoinCounter)
		if !ok {
			return nil, games.ErrSessionNotFound
		}
		return cc.Answer(data.raw())
	})
}

func (api *gamesApi) startBudgetBuilder(ctx echo.Context) error {
	return api.start(ctx, games.NewBudgetBuilder(api.content))
}

func (api *gamesApi) allocateBudget(ctx echo.Context) error {
	var data AllocationRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AllocationRequest")
	}
	return api.play(ctx, func(g games.Game) (interface{}, error) {
		bb, ok := g.(*games.BudgetBuilder)
		if !ok {
			return nil, games.ErrSessionNotFound
		}
		return bb.Allocate(data.allocation())
	})
}

func (api *gamesApi) answerScenario(ctx echo.Context) error {
	var data ScenarioAnswerRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ScenarioAnswerRequest")
	}
	return api.play(ctx, func(g games.Game) (interface{}, error) {
		bb, ok := g.(*games.BudgetBuilder)
		if !ok {
			return nil, games.ErrSessionNotFound
		}
		return bb.AnswerScenario(data.Option)
	})
}

func (api *gamesApi) startSavingsSprint(ctx echo.Context) error {
	return api.start(ctx, games.NewSavingsSprint(api.content, api.newRand()))
}

func (api *gamesApi) playWeek(ctx echo.Context) error {
	var data WeekRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to WeekRequest")
	}
	return api.play(ctx, func(g games.Game) (interface{}, error) {
		ss, ok := g.(*games.SavingsSprint)
		if !ok {
			return nil, games.ErrSessionNotFound
		}
		return ss.PlayWeek(data.Selected)
	})
}

func (api *gamesApi) queryQuizzes(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.content.Quizzes)
}

func (api *gamesApi) retrieveQuiz(ctx echo.Context) error {
	q, ok := api.content.Quiz(ctx.Param("id"))
	if !ok {
		return games.ErrQuizNotFound
	}
	return ctx.JSON(http.StatusOK, q)
}

func (api *gamesApi) submitQuiz(ctx echo.Context) error {
	var data QuizSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to QuizSubmission")
	}
	res, err := api.content.GradeQuiz(ctx.Param("id"), data.Answers)
	if err != nil {
		return errors.Wrap(err, "grading quiz")
	}
	return ctx.JSON(http.StatusOK, res)
}

type (
	GameResponse struct {
		Session *games.Session `json:"session"`
		Result  interface{}    `json:"result,omitempty"`
		Game    interface{}    `json:"game"`
		Points  *games.Points  `json:"points,omitempty"` // set once the game is over
	}

	// CoinAnswerRequest accepts the answer as a JSON number or string.
	CoinAnswerRequest struct {
		Answer interface{} `json:"answer"`
	}

	// AllocationRequest accepts each amount as a JSON number or string.
	// Anything that is not a number counts as 0.
	AllocationRequest struct {
		Needs   interface{} `json:"needs"`
		Wants   interface{} `json:"wants"`
		Savings interface{} `json:"savings"`
	}

	ScenarioAnswerRequest struct {
		Option int `json:"option"`
	}

	WeekRequest struct {
		Selected []string `json:"selected"`
	}

	QuizSubmission struct {
		Answers []int `json:"answers"`
	}
)

func (r AllocationRequest) allocation() games.Allocation {
	return games.Allocation{Needs: wholeNumber(r.Needs), Wants: wholeNumber(r.Wants), Savings: wholeNumber(r.Savings)}
}

func wholeNumber(v interface{}) int {
	var f float64
	switch v := v.(type) {
	case float64:
		f = v
	case string:
		var err error
		if f, err = strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return 0
		}
	default:
		return 0
	}
	if math.IsNaN(f) || math.Abs(f) > math.MaxInt32 {
		return 0
	}
	return int(f)
}

func (r CoinAnswerRequest) raw() string {
	switch v := r.Answer.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%g", v)
	}
	return fmt.Sprint(r.Answer)
}
