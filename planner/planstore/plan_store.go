package planstore

import (
	"encoding/binary"
	"io"
	"os"
	"sync"

	"github.com/dsnet/golib/memfile"

	"github.com/kagerodb/KageroDB/common"
	"github.com/kagerodb/KageroDB/errors"
	"github.com/kagerodb/KageroDB/execution/expression"
	"github.com/kagerodb/KageroDB/planner/plannodes"
)

const ErrTruncatedRecord = errors.Error("plan store file ends inside a record")

type storeFile interface {
	io.ReaderAt
	io.WriterAt
}

/**
 * PlanStore persists serialized plans in an append-only record log so that
 * cached plans survive a restart. Each record is a 4 byte little-endian
 * payload length followed by the JSON payload.
 */
type PlanStore struct {
	file      storeFile
	fileName  string
	size      int64
	numWrites uint64
	fileMutex *sync.Mutex
}

// NewPlanStore opens (or creates) the record log at dbFilename.
func NewPlanStore(dbFilename string) (*PlanStore, error) {
	file, err := os.OpenFile(dbFilename, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	return &PlanStore{file, dbFilename, info.Size(), 0, new(sync.Mutex)}, nil
}

// NewVirtualPlanStore is the in-memory variant used by tests and ephemeral
// instances.
func NewVirtualPlanStore() *PlanStore {
	file := memfile.New(make([]byte, 0))
	return &PlanStore{file, "", 0, 0, new(sync.Mutex)}
}

// Append serializes plan and writes it as one record.
func (s *PlanStore) Append(plan plannodes.Plan) error {
	payload, err := plannodes.SerializePlanNode(plan)
	if err != nil {
		return err
	}

	s.fileMutex.Lock()
	defer s.fileMutex.Unlock()

	header := make([]byte, 4)
	binary.LittleEndian.PutUint32(header, uint32(len(payload)))
	if _, err := s.file.WriteAt(header, s.size); err != nil {
		return err
	}
	if _, err := s.file.WriteAt(payload, s.size+4); err != nil {
		return err
	}
	s.size += int64(4 + len(payload))
	s.numWrites++
	common.KdbPrintf(common.DEBUG_INFO, "plan store: appended %s (%d bytes)\n", plan.GetDebugStr(), len(payload))
	return nil
}

// LoadAll re-deserializes every stored plan, in append order. The returned
// expressions are the concatenated ownership handoffs of each plan's
// deserialization.
func (s *PlanStore) LoadAll() ([]plannodes.Plan, []expression.Expression, error) {
	s.fileMutex.Lock()
	defer s.fileMutex.Unlock()

	plans := make([]plannodes.Plan, 0)
	exprs := make([]expression.Expression, 0)
	header := make([]byte, 4)
	offset := int64(0)
	for offset < s.size {
		if offset+4 > s.size {
			return nil, nil, ErrTruncatedRecord
		}
		if _, err := s.file.ReadAt(header, offset); err != nil {
			return nil, nil, err
		}
		payloadLen := int64(binary.LittleEndian.Uint32(header))
		if offset+4+payloadLen > s.size {
			return nil, nil, ErrTruncatedRecord
		}
		payload := make([]byte, payloadLen)
		if _, err := s.file.ReadAt(payload, offset+4); err != nil {
			return nil, nil, err
		}
		plan, planExprs, err := plannodes.DeserializePlanNode(payload)
		if err != nil {
			return nil, nil, err
		}
		plans = append(plans, plan)
		exprs = append(exprs, planExprs...)
		offset += 4 + payloadLen
	}
	return plans, exprs, nil
}

// GetNumWrites returns how many records this instance has appended.
func (s *PlanStore) GetNumWrites() uint64 { return s.numWrites }

// ShutDown closes the underlying file when it is a real one.
func (s *PlanStore) ShutDown() {
	if closer, ok := s.file.(io.Closer); ok {
		closer.Close()
	}
}
