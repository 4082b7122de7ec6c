package conf

// network carries the per-chain protocol parameters that the original
// deployments hardcode: fee constants, payout and executor identities, and
// the legacy cap-accounting toggle.
type network struct {
	Name string
	Url  string

	// Manager is the engine identity: EIP-712 verifying contract and the
	// escrow account that holds auction funds until withdrawal.
	Manager string

	// PlatformPayout receives the platform side of fee and revenue splits.
	PlatformPayout string

	// NativeMintFee is the flat per-token protocol fee in wei.
	NativeMintFee string

	// Mechanic escrow identities. Dutch and ranked are fee waived.
	DutchMechanic  string
	RankedMechanic string
	SeedMechanic   string

	// GaslessMechanic is an additional fee waived identity.
	GaslessMechanic string

	// PlatformExecutors may sign gated claims. Defaults to the configured
	// signer when empty.
	PlatformExecutors []string

	// CapUserIsTxSender keys per-user cap accounting by the transaction
	// sender instead of the mint recipient on legacy chains.
	CapUserIsTxSender bool
}

const InfuraId = "460f40a260564ac4a4f4b3fffb032dad"

var networks = map[int64]*network{
	1337: {
		Name:            "localhost",
		Url:             "http://127.0.0.1:8545",
		Manager:         "0x00000000000000000000000000000000000f00d1",
		PlatformPayout:  "0x00000000000000000000000000000000000cafe1",
		NativeMintFee:   "800000000000000",
		DutchMechanic:   "0x000000000000000000000000000000000000d0c1",
		RankedMechanic:  "0x000000000000000000000000000000000000a0c1",
		SeedMechanic:    "0x0000000000000000000000000000000000005eed",
		GaslessMechanic: "0x00000000000000000000000000000000000ea5e1",
	},
	1: {
		Name:              "mainnet",
		Url:               "https://mainnet.infura.io/v3/" + InfuraId,
		Manager:           "0x1bf979282181f2b7a640d17ab5d2e25125f2de5e",
		PlatformPayout:    "0x8e0d32b1a90a97bea5adb8ec53bcb19293b58ad2",
		NativeMintFee:     "800000000000000",
		DutchMechanic:     "0xd698911b1bb2a9c849e09a2b42f7c2ed3fb1c7c6",
		RankedMechanic:    "0x480ab106064e450888cbf24b8682cbd5a6bd0088",
		SeedMechanic:      "0x6b8b2a5e0b6c3f43a41c1f6a95b1ad0c3a30d31b",
		GaslessMechanic:   "0x5b4e2a3fb3f7e62a4ad651ba40cf7c1a5b7a8d71",
		CapUserIsTxSender: true,
	},
	137: {
		Name:              "matic",
		Url:               "https://rpc-mainnet.maticvigil.com",
		Manager:           "0xfbb65c52f7965b55d4f2a3c4ffd4ae22a8e88f65",
		PlatformPayout:    "0x8e0d32b1a90a97bea5adb8ec53bcb19293b58ad2",
		NativeMintFee:     "2000000000000000000",
		DutchMechanic:     "0xae22cd8052d64efd8e70b09b694b8bd8e6bbcc57",
		RankedMechanic:    "0x3f0a9571071c2a4be3e4a25add7e5a5cb5e225b3",
		SeedMechanic:      "0x1d5e86e9a05ed53dbd24a4c1e9e2d70a75a1c56f",
		GaslessMechanic:   "0x84706bd79202b9b060a4bfb3d0dbea37a0f35b67",
		CapUserIsTxSender: true,
	},
	10: {
		Name:            "optimism",
		Url:             "https://mainnet.optimism.io",
		Manager:         "0xfafd47bb399a74a9d8b124bbfbbddec1f9650367",
		PlatformPayout:  "0x8e0d32b1a90a97bea5adb8ec53bcb19293b58ad2",
		NativeMintFee:   "800000000000000",
		DutchMechanic:   "0x7f75358787f880506c5dc6100386f77be8de0a30",
		RankedMechanic:  "0xb64f5b35ae7f2dd8e0ba5c6a3b42e7a1f0cbda9c",
		SeedMechanic:    "0x2bb3e5ae79a6e756dd44c1b3f6f30d6d4a1b6a1e",
		GaslessMechanic: "0x9db7c9c48295cda6061fc8331ae86b11bcbebc4e",
	},
	42161: {
		Name:            "arbitrum",
		Url:             "https://arb1.arbitrum.io/rpc",
		Manager:         "0x41cbab1028984a34c1338f437c726de791695ae8",
		PlatformPayout:  "0x8e0d32b1a90a97bea5adb8ec53bcb19293b58ad2",
		NativeMintFee:   "800000000000000",
		DutchMechanic:   "0x7f6e4e2b2f2f0c6a3b2bf63bc40e9c51a5c0a6e4",
		RankedMechanic:  "0x90a1b7e3e2fa3c6c1eaf3bf0aa5c9f20d6b8f5a0",
		SeedMechanic:    "0x5c40ed2b6ab8ba2e3a9f2f6e7c1d8a1b0e9d4c3f",
		GaslessMechanic: "0xe25774af4d8fc47d6c2a6b1c5bf2e7e0376b3110",
	},
	8453: {
		Name:            "base",
		Url:             "https://mainnet.base.org",
		Manager:         "0x8087039152c472fa74f47398628ff002994056ea",
		PlatformPayout:  "0x8e0d32b1a90a97bea5adb8ec53bcb19293b58ad2",
		NativeMintFee:   "800000000000000",
		DutchMechanic:   "0xa07407bbcd47290dc4e1d6ef5f9e0b4fd1e3f6d8",
		RankedMechanic:  "0xc1f6e5bbd9a5a3f1d7b4f2e8b0a9c3d2e1f0a4b9",
		SeedMechanic:    "0x4e2c7a1f9b8d6e5c3a2b1f0e9d8c7b6a5f4e3d2c",
		GaslessMechanic: "0xd0b61c78d65d5aaa7f1d5bcd0e9c8cee2dcdc45b",
	},
	84532: {
		Name:           "base sepolia",
		Url:            "https://sepolia.base.org",
		Manager:        "0x41aba7aba9d9b0bf2d53f723fc1e8fb87a2e46de",
		PlatformPayout: "0x9f7a946d935c8efc7a8329c0d894652bf87afcd9",
		NativeMintFee:  "800000000000000",
		DutchMechanic:  "0x48f0cd2d447285abb6b5c2dcaa4b55fcfd9a0efc",
		RankedMechanic: "0x7a9c2e5f1b3d8c6a4e0f9b7d5c3a1e8f6d4b2a0c",
		SeedMechanic:    "0x35f8d2c1b0a9e8f7d6c5b4a3f2e1d0c9b8a7f6e5",
		GaslessMechanic: "0xef06bd95304f44fe1c6f9d7feb0d279038e1e3ba",
	},
	7777777: {
		Name:            "zora",
		Url:             "https://rpc.zora.energy",
		Manager:         "0x3ad45858c7d7f3ef2b0a79e6a76b4e5a51099be8",
		PlatformPayout:  "0x8e0d32b1a90a97bea5adb8ec53bcb19293b58ad2",
		NativeMintFee:   "777000000000000",
		DutchMechanic:   "0xd0f2a5ab3e70d569c6489331dc25df5a10de1a10",
		RankedMechanic:  "0x8a5b3c2d1e0f9a8b7c6d5e4f3a2b1c0d9e8f7a6b",
		SeedMechanic:    "0x6e5d4c3b2a1f0e9d8c7b6a5f4e3d2c1b0a9f8e7d",
		GaslessMechanic: "0xa6c38b76ed52bbdfaf2cb10aaf2f5d4e5b35b1ba",
	},
}
