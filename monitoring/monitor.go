// Package monitoring serves coherence protocols and running systems over
// HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/sarchlab/coherence/mem/coherence"
	"github.com/sarchlab/coherence/mem/coherence/protocols"
	"github.com/sarchlab/coherence/mem/coherence/system"
	"github.com/sarchlab/coherence/mem/coherence/verify"
	"github.com/sarchlab/coherence/monitoring/web"
	"github.com/sarchlab/coherence/sim/id"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// Monitor turns protocols and a running system into a web server.
type Monitor struct {
	portNumber int
	directory  string
	numClients int
	idGen      id.IDGenerator

	systemLock sync.Mutex
	system     *system.System

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		directory:  "full",
		numClients: 4,
		idGen:      id.NewIDGenerator(),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithDirectory sets the directory that protocols are built with when they
// are served by name.
func (m *Monitor) WithDirectory(name string, numClients int) *Monitor {
	m.directory = name
	m.numClients = numClients

	return m
}

// RegisterSystem sets the system whose line tables are served.
func (m *Monitor) RegisterSystem(s *system.System) {
	m.systemLock.Lock()
	defer m.systemLock.Unlock()

	m.system = s
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        m.idGen.Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Router returns the routes of the server.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/policies", m.listPolicies)
	r.HandleFunc("/api/transitions/{policy}", m.listTransitions)
	r.HandleFunc("/api/check/{policy}", m.checkPolicy)
	r.HandleFunc("/api/walk/{policy}", m.walk)
	r.HandleFunc("/api/tables", m.listTables)
	r.HandleFunc("/api/table/{name}", m.tableDetails)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server and returns its address.
func (m *Monitor) StartServer() string {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring coherence with %s\n", url)

	router := m.Router()

	go func() {
		err := http.Serve(listener, router)
		dieOnErr(err)
	}()

	return url
}

type policyRsp struct {
	Name       string   `json:"name"`
	Display    string   `json:"display"`
	States     []string `json:"states"`
	ProbeTypes []string `json:"probe_types"`
	GrantTypes []string `json:"grant_types"`
}

func (m *Monitor) buildPolicy(name string) (coherence.Policy, error) {
	dir, err := protocols.NewDirectory(m.directory, m.numClients)
	if err != nil {
		return nil, err
	}

	return protocols.New(name, dir)
}

func (m *Monitor) policyOr404(w http.ResponseWriter, r *http.Request) coherence.Policy {
	p, err := m.buildPolicy(mux.Vars(r)["policy"])
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		_, err = w.Write([]byte(err.Error()))
		dieOnErr(err)

		return nil
	}

	return p
}

func (m *Monitor) listPolicies(w http.ResponseWriter, _ *http.Request) {
	rsp := []policyRsp{}

	for _, name := range protocols.Names() {
		p, err := m.buildPolicy(name)
		dieOnErr(err)

		info := policyRsp{Name: name, Display: p.Name()}

		for _, s := range p.ClientStates() {
			info.States = append(info.States, p.StateName(s))
		}

		for _, t := range p.ProbeTypes() {
			info.ProbeTypes = append(info.ProbeTypes, p.ProbeTypeName(t))
		}

		for _, t := range p.GrantTypes() {
			info.GrantTypes = append(info.GrantTypes, p.GrantTypeName(t))
		}

		rsp = append(rsp, info)
	}

	writeJSON(w, rsp)
}

func (m *Monitor) listTransitions(w http.ResponseWriter, r *http.Request) {
	p := m.policyOr404(w, r)
	if p == nil {
		return
	}

	writeJSON(w, verify.Transitions(p))
}

func (m *Monitor) checkPolicy(w http.ResponseWriter, r *http.Request) {
	p := m.policyOr404(w, r)
	if p == nil {
		return
	}

	writeJSON(w, verify.CheckPolicy(p))
}

func intParam(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}

	return strconv.Atoi(s)
}

func (m *Monitor) walk(w http.ResponseWriter, r *http.Request) {
	policy := mux.Vars(r)["policy"]

	steps, err := intParam(r, "steps", 1000)
	if err == nil && steps < 0 {
		err = fmt.Errorf("steps must not be negative, got %d", steps)
	}

	if err == nil {
		var seed int
		seed, err = intParam(r, "seed", 0)

		if err == nil {
			m.runWalk(w, policy, int64(seed), steps)
			return
		}
	}

	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "Error: %s", err)
}

func (m *Monitor) runWalk(
	w http.ResponseWriter,
	policy string,
	seed int64,
	steps int,
) {
	if _, err := m.buildPolicy(policy); err != nil {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, err)

		return
	}

	sys := system.MakeBuilder().
		WithPolicy(policy).
		WithDirectory(m.directory).
		WithNumClients(m.numClients).
		Build()

	bar := m.CreateProgressBar("walk "+policy, uint64(steps))
	defer m.CompleteProgressBar(bar)

	report := verify.NewWalker(sys, seed).WithProgress(bar).Run(steps)

	writeJSON(w, report)
}

func (m *Monitor) listTables(w http.ResponseWriter, _ *http.Request) {
	m.systemLock.Lock()
	defer m.systemLock.Unlock()

	names := []string{}

	if m.system != nil {
		for _, t := range m.system.Tables() {
			names = append(names, t.Name())
		}
	}

	writeJSON(w, names)
}

type tableView struct {
	Name  string
	Lines map[string]string
}

func (m *Monitor) tableDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	table := m.findTable(name)
	if table == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Table not found"))
		dieOnErr(err)

		return
	}

	view := &tableView{Name: table.Name(), Lines: table.Snapshot()}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(view)
	serializer.SetMaxDepth(2)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) findTable(name string) system.Table {
	m.systemLock.Lock()
	defer m.systemLock.Unlock()

	if m.system == nil {
		return nil
	}

	for _, t := range m.system.Tables() {
		if t.Name() == name {
			return t
		}
	}

	return nil
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]progressRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.status())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
