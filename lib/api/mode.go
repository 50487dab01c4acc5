package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fosdem/layertunnel/lib/rotation"
	"github.com/fosdem/layertunnel/lib/theatre"
)

type ModeReq struct {
	// Mode is the mode number or its name
	Mode string `json:"mode" example:"whole-cw"`
}

type ModeResp struct {
	Mode       string  `json:"mode" example:"layer-oscillate"`
	Number     int     `json:"number" example:"6"`
	TimeToNext float64 `json:"time_to_next"`
}

// @Summary	Get the active rotation mode
// @Router		/api/mode [get]
// @Tags		mode
// @Produce	json
// @Success	200	{object}	ModeResp
func (a *Api) getMode(w http.ResponseWriter, _ *http.Request) {
	snap := a.theatre.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(ModeResp{
		Mode:       snap.Mode.String(),
		Number:     snap.ModeNumber,
		TimeToNext: snap.TimeToNextMode,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("couldn't encode mode: %s", err), http.StatusInternalServerError)
	}
}

// @Summary	Switch the rotation mode until the next scripted switch
// @Router		/api/mode/{mode} [post]
// @Tags		mode
// @Param		mode	path	string	true	"Mode number (0-7) or name"
// @Success	200
// @Failure	400	{string}	string	"Unknown rotation mode"
func (a *Api) handleMode(w http.ResponseWriter, req *http.Request) {
	a.requestMode(w, req.PathValue("mode"))
}

// @Summary	Switch the rotation mode until the next scripted switch
// @Router		/api/mode [post]
// @Param		modeReq	body	ModeReq	true	"Mode"
// @Tags		mode
// @Accept		json
// @Success	200
// @Failure	400	{string}	string	"Could not decode json request"
func (a *Api) handleModeJson(w http.ResponseWriter, req *http.Request) {
	var modeReq ModeReq
	err := json.NewDecoder(req.Body).Decode(&modeReq)
	if err != nil {
		http.Error(w, fmt.Sprintf("could not decode json request: %s", err), http.StatusBadRequest)
		return
	}
	a.requestMode(w, modeReq.Mode)
}

func (a *Api) requestMode(w http.ResponseWriter, name string) {
	mode, err := rotation.ParseMode(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err = a.theatre.RequestMode(mode)
	if errors.Is(err, theatre.ErrModesFrozen) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("could not set mode: %s", err), http.StatusServiceUnavailable)
		return
	}
	a.writeOk(w)
}
