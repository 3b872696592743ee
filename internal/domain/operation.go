package domain

import "github.com/pkg/errors"

// Operation identifies a write action and its state slot
type Operation string

const (
	OperationBuy          Operation = "buy"
	OperationStake        Operation = "stake"
	OperationUnstake      Operation = "unstake"
	OperationClaimRewards Operation = "claim-rewards"
	OperationClaimVesting Operation = "claim-vesting"
)

// Operations lists every slot in display order
var Operations = []Operation{
	OperationBuy,
	OperationStake,
	OperationUnstake,
	OperationClaimRewards,
	OperationClaimVesting,
}

// ParseOperation accepts the slot names used in URLs and CLI commands
func ParseOperation(s string) (Operation, error) {
	for _, op := range Operations {
		if string(op) == s {
			return op, nil
		}
	}
	return "", errors.Errorf("unknown operation %q", s)
}

// Step is a state of a transaction flow
type Step string

const (
	StepIdle            Step = "idle"
	StepSwitchingChain  Step = "switching-chain"
	StepApproving       Step = "approving"
	StepWaitingApproval Step = "waiting-approval"
	StepBuying          Step = "buying"
	StepStaking         Step = "staking"
	StepUnstaking       Step = "unstaking"
	StepClaiming        Step = "claiming"
	StepConfirming      Step = "confirming"
	StepSuccess         Step = "success"
	StepError           Step = "error"
)

// IsTerminal reports whether no automatic transition leaves s
func (s Step) IsTerminal() bool {
	return s == StepSuccess || s == StepError
}

// InFlight reports whether a flow in step s is still talking to the chain
func (s Step) InFlight() bool {
	return s != StepIdle && !s.IsTerminal()
}
