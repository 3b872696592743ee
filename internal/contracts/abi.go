package contracts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const erc20JSON = `[
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]}
]`

const presaleJSON = `[
	{"type":"function","name":"buyTokens","stateMutability":"nonpayable","inputs":[{"name":"tokenIndex","type":"uint256"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"getPresaleStatus","stateMutability":"view","inputs":[],"outputs":[
		{"name":"tokensSold","type":"uint256"},{"name":"tokensAvailable","type":"uint256"},{"name":"timeRemaining","type":"uint256"},
		{"name":"isEnded","type":"bool"},{"name":"currentTime","type":"uint256"},{"name":"currentPrice","type":"uint256"}]},
	{"type":"function","name":"paused","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"totalTokensSold","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"MIN_PURCHASE","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"MAX_PURCHASE","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"event","name":"TokensPurchased","anonymous":false,"inputs":[
		{"indexed":true,"name":"buyer","type":"address"},{"indexed":true,"name":"tokenIndex","type":"uint256"},
		{"indexed":false,"name":"paymentAmount","type":"uint256"},{"indexed":false,"name":"tokenAmount","type":"uint256"}]}
]`

const stakingJSON = `[
	{"type":"function","name":"stake","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"unstake","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"claimRewards","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"getUserStake","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[
		{"name":"stakedAmount","type":"uint256"},{"name":"pendingRewards","type":"uint256"},{"name":"lastClaimTime","type":"uint256"}]},
	{"type":"function","name":"aprBasisPoints","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"totalStaked","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"rewardPoolBalance","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

const vestingJSON = `[
	{"type":"function","name":"claim","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"getUserVesting","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[
		{"name":"total","type":"uint256"},{"name":"vested","type":"uint256"},{"name":"claimed","type":"uint256"},
		{"name":"claimable","type":"uint256"},{"name":"remaining","type":"uint256"}]},
	{"type":"function","name":"vestingStart","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"vestingDuration","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

var (
	ERC20ABI   = mustParse(erc20JSON)
	PresaleABI = mustParse(presaleJSON)
	StakingABI = mustParse(stakingJSON)
	VestingABI = mustParse(vestingJSON)
)

func mustParse(def string) *abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic("contracts: invalid ABI: " + err.Error())
	}
	return &parsed
}
