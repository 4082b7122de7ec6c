package conf

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/joho/godotenv"
	"minter/common/utils"
)

// default allocation
var (
	ChainId    int64 = 84532
	HexKey           = "7b2546a5d4e658d079c6b2755c6d7495edd01a686fddae010830e9c93b23e398"
	ServerAddr       = ":3000"
	MysqlDsn         = "root:123456@tcp(127.0.0.1:3306)/minter"
	ResetDB          = false
)

// globally available object instantiated from config
var (
	Chain      *network              //Chain specific mint protocol parameters
	PrivateKey *secp256k1.PrivateKey //Platform signer private key
	Signer     string                //Platform signer address
)

func init() {
	// set log printout to stdout instead of stderr
	log.SetOutput(os.Stdout)

	// read configuration to override default value
	setConf()

	// Blockchain network configuration
	Chain = networks[ChainId]
	if Chain == nil {
		panic(fmt.Sprintf("Unsupported chainId: %v", ChainId))
	}

	// Platform signer private key configuration
	var err error
	PrivateKey, err = utils.HexToECDSA(HexKey)
	if err != nil {
		panic(err)
	}
	Signer = string(utils.PubkeyToAddress(PrivateKey.PubKey()))
	if len(Chain.PlatformExecutors) == 0 {
		Chain.PlatformExecutors = []string{Signer}
	}
}

func setConf() {
	err := godotenv.Load("minter.env")
	if err != nil {
		log.Println("Failed to load environment variables from .env file,", err)
	}

	// Parse the basic configuration of the server
	if chainId := os.Getenv("CHAIN_ID"); chainId != "" {
		ChainId, err = strconv.ParseInt(chainId, 0, 64)
		if err != nil {
			panic(err)
		}
	}
	if hexKey := os.Getenv("HEX_KEY"); hexKey != "" {
		HexKey = hexKey
	}
	if serverAddr := os.Getenv("SERVER_ADDR"); serverAddr != "" {
		ServerAddr = serverAddr
	}
	if mysqlDsn := os.Getenv("MYSQL_DSN"); mysqlDsn != "" {
		MysqlDsn = mysqlDsn
	}
	if resetDB := os.Getenv("RESET_DB"); resetDB != "" {
		ResetDB = resetDB == "true"
	}
}
