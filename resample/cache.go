package resample

import "sync"

// The kernel bank is a pure function of the reduced frequency pair and
// the filter width; banks are memoized and shared read-only.

type kernelKey struct {
	origFreq           int
	newFreq            int
	lowpassFilterWidth int
}

var kernelCache sync.Map // kernelKey -> *kernelBank

func kernelBankFor(origFreq, newFreq, lowpassFilterWidth int) *kernelBank {
	key := kernelKey{
		origFreq:           origFreq,
		newFreq:            newFreq,
		lowpassFilterWidth: lowpassFilterWidth,
	}

	if cached, ok := kernelCache.Load(key); ok {
		return cached.(*kernelBank)
	}

	bank := newKernelBank(origFreq, newFreq, lowpassFilterWidth)
	kernelCache.Store(key, bank)
	return bank
}
