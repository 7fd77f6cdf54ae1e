package app

import (
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/process"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
		go a.SchedProcessMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", a.SchedCatalogReportTask)
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedSystemMonitorTask system monitor
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	_cpuuse, err := cpu.Percent(0, false)
	if err == nil && len(_cpuuse) > 0 {
		a.metrics.SystemCPUPercent.Set(_cpuuse[0])
	}

	_meminfo, err := mem.VirtualMemory()
	if err == nil {
		a.metrics.SystemMemoryMB.Set(float64(_meminfo.Used / 1024 / 1024))
	}
}

// SchedProcessMonitorTask app process monitor
func (a *Application) SchedProcessMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	p, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // G115: PID is always within int32 range
	if err != nil {
		return
	}

	cpuuse, err := p.CPUPercent()
	if err == nil {
		a.metrics.ProcessCPUPercent.Set(cpuuse)
	}

	meminfo, err := p.MemoryInfo()
	if err == nil {
		a.metrics.ProcessMemoryMB.Set(float64(meminfo.RSS / 1024 / 1024))
	}
}

// SchedCatalogReportTask logs the catalog summary once a day
func (a *Application) SchedCatalogReportTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	if a.catalog == nil {
		return
	}
	stats := a.catalog.Aggregate()
	zap.L().Info("catalog summary",
		zap.String("namespace", "catalog"),
		zap.Int("products", stats.Total),
		zap.Int("chemicals", stats.DistinctChemicals),
		zap.Int("brands", stats.DistinctBrands),
		zap.Any("byRisk", stats.ByRisk))
}
