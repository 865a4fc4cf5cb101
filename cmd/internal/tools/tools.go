package tools

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/nathanhack/bersim/benchmarking"
	mat "github.com/nathanhack/sparsemat"
)

//SimulationStats is the content of a results file. Stats is keyed by the channel
// parameter of each step: the crossover probability for BSC runs, the SNR in dB
// for chain sweeps.
type SimulationStats struct {
	TypeInfo string
	ECCInfo  string
	Stats    map[float64]benchmarking.Stats
}
type simulationStats struct {
	TypeInfo string
	ECCInfo  string
	Stats    map[string]benchmarking.Stats
}

func (s *SimulationStats) MarshalJSON() ([]byte, error) {
	ss := simulationStats{
		TypeInfo: s.TypeInfo,
		ECCInfo:  s.ECCInfo,
		Stats:    map[string]benchmarking.Stats{},
	}

	for f, stat := range s.Stats {
		ss.Stats[fmt.Sprintf("%v", f)] = stat
	}

	return json.Marshal(ss)
}

func (s *SimulationStats) UnmarshalJSON(bytes []byte) error {
	var ss simulationStats

	err := json.Unmarshal(bytes, &ss)
	if err != nil {
		return err
	}

	s.TypeInfo = ss.TypeInfo
	s.ECCInfo = ss.ECCInfo
	s.Stats = map[float64]benchmarking.Stats{}

	for fs, stat := range ss.Stats {
		f, err := strconv.ParseFloat(fs, 64)
		if err != nil {
			return err
		}
		s.Stats[f] = stat
	}
	return nil
}

//Parameters returns the keys of Stats in increasing order.
func (s *SimulationStats) Parameters() []float64 {
	ps := make([]float64, 0, len(s.Stats))
	for p := range s.Stats {
		ps = append(ps, p)
	}
	sort.Float64s(ps)
	return ps
}

//AllParameters returns the union of the Stats keys of every results in increasing order.
func AllParameters(stats []*SimulationStats) []float64 {
	all := SimulationStats{Stats: map[float64]benchmarking.Stats{}}
	for _, s := range stats {
		for p, st := range s.Stats {
			all.Stats[p] = st
		}
	}
	return all.Parameters()
}

//Md5Sum identifies a code by its parity check matrix.
func Md5Sum(H mat.SparseMat) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(H.String())))
}

//Metric selects which error rate of a Stats is reported.
type Metric int

const (
	CodewordMetric Metric = iota
	MessageMetric
	ParityMetric
	RawMetric
)

func (m Metric) String() string {
	switch m {
	case MessageMetric:
		return "Message Error"
	case ParityMetric:
		return "Parity Error"
	case RawMetric:
		return "Raw Error"
	default:
		return "Codeword Error"
	}
}

//SelectMetric mirrors the precedence of the --message, --parity and --raw flags.
func SelectMetric(message, parity, raw bool) Metric {
	switch {
	case message:
		return MessageMetric
	case parity:
		return ParityMetric
	case raw:
		return RawMetric
	default:
		return CodewordMetric
	}
}

//Mean returns the mean of the selected error rate.
func (m Metric) Mean(s benchmarking.Stats) float64 {
	switch m {
	case MessageMetric:
		return s.ChannelMessageError.Mean
	case ParityMetric:
		return s.ChannelParityError.Mean
	case RawMetric:
		return s.ChannelRawError.Mean
	default:
		return s.ChannelCodewordError.Mean
	}
}

//LoadResults returns nil without an error when filepath does not exist.
func LoadResults(filepath string) (*SimulationStats, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, nil
	}

	bs, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %w", filepath, err)
	}

	var stat SimulationStats
	err = json.Unmarshal(bs, &stat)
	if err != nil {
		return nil, fmt.Errorf("error while unmarshalling file %v: %w", filepath, err)
	}
	return &stat, nil
}

//LoadAllResults loads every file, failing on the first missing or broken one.
func LoadAllResults(filepaths []string) ([]*SimulationStats, error) {
	stats := make([]*SimulationStats, len(filepaths))
	for i, resultFile := range filepaths {
		s, err := LoadResults(resultFile)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, fmt.Errorf("results file %v does not exist", resultFile)
		}
		stats[i] = s
	}
	return stats, nil
}

func SaveResults(filepath string, data *SimulationStats) error {
	bs, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error serializing results: %w", err)
	}

	err = os.WriteFile(filepath, bs, 0644)
	if err != nil {
		return fmt.Errorf("error while saving results to %v: %w", filepath, err)
	}
	return nil
}

//OpenResults loads filepath, creating empty results when it does not exist, and
// checks that existing results were produced by the same run type and code.
func OpenResults(filepath, typeInfo, eccInfo string) (*SimulationStats, error) {
	data, err := LoadResults(filepath)
	if err != nil {
		return nil, err
	}

	if data == nil {
		data = &SimulationStats{
			TypeInfo: typeInfo,
			ECCInfo:  eccInfo,
			Stats:    make(map[float64]benchmarking.Stats),
		}
	}

	if data.TypeInfo != typeInfo {
		return nil, fmt.Errorf("results loaded do not match the same type expected %v but found %v", typeInfo, data.TypeInfo)
	}
	if data.ECCInfo != eccInfo {
		return nil, fmt.Errorf("results loaded do not match the ECC expected %v but found %v", eccInfo, data.ECCInfo)
	}
	return data, nil
}
