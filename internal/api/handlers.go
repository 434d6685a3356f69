package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"PAIBot/internal/catalog"
	"PAIBot/internal/i18n"
	"PAIBot/internal/model"
	"PAIBot/internal/report"
)

type startRequest struct {
	UserID   string `json:"userId" binding:"omitempty,max=128"`
	Language string `json:"language" binding:"omitempty,max=16"`
}

type chatRequest struct {
	SessionID string `json:"sessionId" binding:"required,startswith=session_"`
	Message   string `json:"message" binding:"required,max=4000"`
}

func StartAssessment(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req startRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				fail(c, http.StatusBadRequest, err.Error())
				return
			}
		}
		loc := locale(c, d.DefaultLocale)
		if req.Language != "" {
			loc = i18n.Parse(req.Language)
		}
		started, err := d.Advisor.Start(c.Request.Context(), req.UserID, loc)
		if err != nil {
			failErr(c, d.Logger, err)
			return
		}
		ok(c, started)
	}
}

func Chat(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		reply, err := d.Advisor.Chat(c.Request.Context(), req.SessionID, req.Message)
		if err != nil {
			failErr(c, d.Logger, err)
			return
		}
		ok(c, reply)
	}
}

func GetResult(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		loc := locale(c, d.DefaultLocale)
		res, err := d.Advisor.Result(c.Request.Context(), c.Param("id"), loc)
		if err != nil {
			failErr(c, d.Logger, err)
			return
		}
		if c.Query("format") == "text" {
			c.String(http.StatusOK, report.FormatResult(res, loc))
			return
		}
		ok(c, res)
	}
}

type trackView struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	RiskLevel   float64        `json:"riskLevel"`
	TimeHorizon float64        `json:"timeHorizon"`
	ESGProfile  model.TrackESG `json:"esgProfile"`
	SDGs        []int          `json:"sdgs"`
	Sectors     []string       `json:"sectors"`
	Examples    []string       `json:"examples"`
}

func pickAll(ls []model.Localized, loc i18n.Locale) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = i18n.Pick(l, loc)
	}
	return out
}

func ListTracks(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		loc := locale(c, d.DefaultLocale)
		tracks := d.Catalog.Tracks()
		out := make([]trackView, 0, len(tracks))
		for _, t := range tracks {
			out = append(out, trackView{
				ID:          t.ID,
				Name:        i18n.Pick(t.Name, loc),
				Description: i18n.Pick(t.Description, loc),
				RiskLevel:   t.RiskLevel,
				TimeHorizon: t.TimeHorizon,
				ESGProfile:  t.ESGProfile,
				SDGs:        t.SDGs,
				Sectors:     pickAll(t.Sectors, loc),
				Examples:    pickAll(t.Examples, loc),
			})
		}
		ok(c, gin.H{"version": d.Catalog.Version(), "tracks": out})
	}
}

type languageView struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type sdgView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func MasterData(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		loc := locale(c, d.DefaultLocale)
		ph := i18n.For(loc)

		langs := make([]languageView, 0, len(i18n.Locales))
		for _, l := range i18n.Locales {
			langs = append(langs, languageView{Code: string(l), Name: i18n.Pick(i18n.For(l).Language, loc)})
		}
		stages := make(map[model.Stage]string, len(model.Stages))
		for _, s := range model.Stages {
			stages[s] = ph.StageName(s)
		}
		sdgs := make([]sdgView, 0, 17)
		for _, s := range catalog.SDGs() {
			sdgs = append(sdgs, sdgView{ID: s.ID, Name: i18n.Pick(s.Name, loc), Icon: s.Icon})
		}

		ok(c, gin.H{
			"languages": langs,
			"appConfig": d.Info,
			"stages":    stages,
			"sdgs":      sdgs,
			"goalTypes": model.GoalTypes,
			"biasTypes": model.BiasTypes,
		})
	}
}
